package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

func main() {
	opID := flag.String("operation", "", "operation ID to build a form for")
	rendererName := flag.String("renderer", "html", "renderer to use (html or tui)")
	format := flag.String("format", "json", "tui output format (json, form, pretty)")
	output := flag.String("output", "", "output file (stdout if empty)")
	source := flag.String("source", "", "OpenAPI document path")
	columns := flag.Int("columns", 1, "form column count")
	flag.Parse()

	if *source == "" || *opID == "" {
		log.Fatal("both -source and -operation are required")
	}

	ctx := context.Background()

	doc, err := openapi.LoadFromFile(ctx, *source)
	if err != nil {
		log.Fatalf("Failed to load document: %v", err)
	}

	layout, err := openapi.BuildForm(doc, *opID, openapi.WithColumns(*columns))
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}

	registry := render.NewRegistry()
	htmlRenderer, err := html.New()
	if err != nil {
		log.Fatalf("Failed to create html renderer: %v", err)
	}
	registry.MustRegister(htmlRenderer)
	tuiRenderer, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(*format)))
	if err != nil {
		log.Fatalf("Failed to create tui renderer: %v", err)
	}
	registry.MustRegister(tuiRenderer)

	renderer, err := registry.Get(*rendererName)
	if err != nil {
		log.Fatalf("Unknown renderer: %v", err)
	}

	out, err := renderer.Render(ctx, layout, render.RenderOptions{})
	if err != nil {
		log.Fatalf("Failed to render form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(string(out))
	}
}
