// Package render populates templates with generated values.
//
// A [Renderer] compiles template source with [lang.Compile] and substitutes
// each resolved placeholder with a value from an [entity.Collection] that
// lives for exactly one document:
//
//	r := render.New(render.WithSeed(42))
//	res := r.Render(ctx, "Dear ${<c>name::first}, call ${<c>phone::mobile}.")
//	fmt.Println(res.Output)
//	for _, d := range res.Diagnostics {
//		fmt.Fprintln(os.Stderr, d)
//	}
//
// Malformed placeholders never abort rendering. They stay in the output as
// written and each occurrence is reported as a [Diagnostic].
// [Renderer.Validate] reports the same diagnostics without generating
// anything, and [Renderer.RenderN] produces independent documents in
// parallel.
package render
