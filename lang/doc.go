// Package lang implements the placeholder language of tmplgen templates.
//
// A template is ordinary text containing placeholders of the form
//
//	${[<entity_id>]type_path[:arg1,arg2,...]}
//
// Processing happens in three stages, each usable on its own:
//
//   - [Scan] finds placeholder occurrences and splits off the entity id.
//   - [Parse] checks a placeholder body against the grammar and separates
//     the type path from its raw arguments.
//   - [Resolve] maps the type path to a [Kind] and validates the arguments
//     with [ParseArgs].
//
// [Compile] runs all three stages over a whole template and keeps the result
// in a process-wide cache keyed by a hash of the source.
//
// # Grammar
//
// Informal EBNF:
//
//	Placeholder → '${' ( '<' EntityID '>' )? Body '}'
//	EntityID    → [a-zA-Z0-9]+
//	Body        → Path ( ':' Args )?
//	Path        → Ident ( '::' Ident )*
//	Ident       → [a-zA-Z0-9_]+
//	Args        → [^:]*
//
// The body extends to the first '}', so placeholders never nest.
//
// # Types
//
//	name::first  name::last  name::full
//	location::place  location::street  location::address
//	phone  phone::mobile  phone::landline
//	dist::normal:mean,stddev
//	guid
//	float:min,max
//	int:min,max
//	set:a,b,...
//
// # Errors
//
// Failures are reported per placeholder as [ErrSyntax], [ErrUnknownType], or
// [ErrArgs]. Inverted ranges are either accepted with an [ErrBounds] warning
// ([BoundsLenient]) or rejected as [ErrArgs] ([BoundsStrict]).
package lang
