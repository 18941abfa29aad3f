package outline2html_test

import (
	"fmt"
	"strings"
	"sync"

	outline2html "github.com/alnah/go-outline2html"
)

// Example renders an outline for in-app preview.
func Example() {
	ontology := outline2html.NewOntology()
	r := outline2html.New(nil, ontology, nil)

	html := r.OutlineToHTML(&outline2html.Outline{
		Name: "Roadmap",
		Notes: []*outline2html.Note{
			{Name: "Q1", Body: "Ship the **beta**."},
		},
	}, false)

	fmt.Println(strings.Contains(html, "<strong>beta</strong>"))
	// Output: true
}

// Example_standalone exports a document styled with the theme colors.
func Example_standalone() {
	r := outline2html.NewWithColors(nil, nil,
		outline2html.NewLiveColors(outline2html.StaticTheme{Text: "#EEEEEE", Background: "#1E1E1E"}),
		nil,
		outline2html.WithTitle("Export"),
	)

	doc := r.MarkdownToHTML("# Hello", "", true)

	fmt.Println(strings.HasPrefix(doc, "<!DOCTYPE html>"))
	fmt.Println(strings.Contains(doc, `style="color: #EEEEEE; background-color: #1E1E1E;"`))
	// Output:
	// true
	// true
}

// Example_configuration shows that flag changes reach the transcoder on the next render.
func Example_configuration() {
	settings := outline2html.DefaultSettings()
	r := outline2html.New(settings, nil, nil)

	r.MarkdownToHTML("x", "", false)
	fmt.Println(r.TranscoderOptions().Has(outline2html.OptionMath))

	settings.Math = true
	r.MarkdownToHTML("x", "", false)
	fmt.Println(r.TranscoderOptions().Has(outline2html.OptionMath))
	// Output:
	// false
	// true
}

// ExampleRepresentation_OutlineHeaderToHTML renders navigable metadata.
func ExampleRepresentation_OutlineHeaderToHTML() {
	ontology := outline2html.NewOntology()
	r := outline2html.New(nil, ontology, nil)

	header := r.OutlineHeaderToHTML(&outline2html.Outline{
		Name: "Research",
		Tags: []*outline2html.Tag{ontology.FindOrCreateTag("reading")},
	}, false, true)

	fmt.Print(header)
	// Output:
	// <h1 class="mf-title">Research</h1>
	// <div class="mf-metadata"><span class="mf-tags"><span class="mf-tag"><a href="nav://tag/reading">reading</a></span></span></div>
}

// ExampleMarkdownOutlineRepresentation_ParseOutline loads an outline saved as Markdown.
func ExampleMarkdownOutlineRepresentation_ParseOutline() {
	m := outline2html.NewMarkdownOutlineRepresentation(nil)

	o, err := m.ParseOutline([]byte("# Trip <!-- Metadata: type: Plan; -->\n\n## Packing\n\n- tent\n"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(o.Name, o.Type.Name, len(o.Notes), o.Notes[0].Name)
	// Output: Trip Plan 1 Packing
}

// ExampleRepresentationPool renders from several goroutines.
func ExampleRepresentationPool() {
	pool := outline2html.NewRepresentationPool(func() *outline2html.Representation {
		return outline2html.New(nil, nil, nil)
	}, outline2html.ResolvePoolSize(2))

	inputs := []string{"one", "two", "three"}
	results := make([]string, len(inputs))

	var wg sync.WaitGroup
	for i, md := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := pool.Acquire()
			defer pool.Release(r)
			results[i] = strings.TrimSpace(r.MarkdownToHTML(md, "", false))
		}()
	}
	wg.Wait()

	fmt.Println(strings.Join(results, " "))
	// Output: <p>one</p> <p>two</p> <p>three</p>
}
