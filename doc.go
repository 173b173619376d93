/*
Package flg parses, serializes and transforms FLG, a line-oriented text format
of tag-delimited named values.

An FLG document is an ordered set of entries. Each entry has a name written as
a tag, such as <name>, and a value written either on the line after the
opening tag or inline:

	# a comment
	<name>
	    "Alice"
	</name>

	<age>30</age>

	@Override
	<handler>
	    {print("hi")}
	</handler>

Values are null, booleans, 64-bit integers, floats, quoted strings, flat
arrays such as [1, "two", 3.0] and lambdas, an opaque code block in braces.
The ast package holds the value model and the Document type.

Parsing is tolerant: Parse never fails, and lines it cannot place are
skipped. The Decoder reports them through Warnings and through an optional
zerolog logger set with WithLogger.

Serialize writes the canonical form shown above. Parse(Serialize(d)) equals
d as long as no string holds a '#' or a newline and every float is finite.
Array elements must also be primitives, and their strings must not contain
double quotes.

Marshal and Unmarshal map Go values onto documents, in the manner of
encoding/json:

	type Profile struct {
		Name string   `flg:"name"`
		Age  int      `flg:"age"`
		Tags []string `flg:"tags,omitempty"`
	}

	var p Profile
	if err := flg.Unmarshal(data, &p); err != nil {
		// handle error
	}

Documents can be stored with a reversible text transform from the codec
package (hex, binary text, Base32, Base64 or a letter rotation), selected
with WithScheme:

	out, err := flg.Marshal(doc, flg.WithScheme(codec.Base64))

The typed accessors GetString, GetInt, GetFloat, GetBool, GetArray and
GetLambda read single entries with the coercions a configuration reader
usually wants.
*/
package flg
