// Package lang converts between the block language and trees of typed
// values.
//
// Two engines share the value model. The parser reads block-language text
// into an [Object]. The serializer renders stored [Item]s back into text in
// two stages: [Stringify] builds an I/O-free [Plan] for one container, and
// [Execute] resolves the plan's placeholders through a [Fetcher].
//
// # Grammar
//
// Informal EBNF:
//
//	Document  → ws List ws EOF
//	List      → '{' ws (Item ws)* '}'
//	Item      → Name ws ':' ws Value
//	Name      → [A-Za-z_][A-Za-z0-9_]*
//	Value     → Text | Boolean | List | Comment | Number | Word
//	Text      → '"' (char | '\x' hex hex)* '"'
//	Boolean   → '@1' | '@0'
//	Comment   → '//' <rest of logical segment>
//	Number    → '-'? digit+ ('.' digit+)?
//	Word      → Function | Conditional | Reference
//	Function  → Name ws '=>' ws <expression>
//	Conditional → <condition> '?' <true> ':' <false>
//	Reference → Name
//
// Words and comments extend over a logical segment: the text up to the
// closing '}' of the enclosing list, or up to the whitespace before the next
// "name:" at the same brace depth.
//
// # Example
//
//	{
//	  name: "John"
//	  age: 30
//	  active: @1
//	  alias: name
//	  double: x => x * 2
//	  grade: score > 90 ? high : low
//	  address: {
//	    city: "S\xe3o Paulo"
//	  }
//	}
//
// # Serialization
//
// Items live in containers addressed by slash-terminated paths. The root is
// "/", and the children of the item "user" at the root live at "/user/".
// A list item renders as a nested block fetched from its child path. Sum and
// difference items render their numeric children joined by the operator.
package lang
