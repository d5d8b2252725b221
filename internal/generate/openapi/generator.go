// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package openapi renders a semantic schema as an OpenAPI 3.1 document.
// Component schemas are built as jsonschema values so the output stays
// structurally valid JSON Schema rather than hand-assembled text.
package openapi

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/reflectgen/internal/generate"
	"github.com/dacolabs/reflectgen/internal/schema"
	"github.com/dacolabs/reflectgen/internal/semantic"
)

// Generator renders OpenAPI 3.1.
type Generator struct{}

func (g *Generator) Name() string { return "openapi" }

func (g *Generator) FileExtension() string { return ".json" }

type document struct {
	OpenAPI    string              `json:"openapi"`
	Info       info                `json:"info"`
	Paths      map[string]pathItem `json:"paths"`
	Components components          `json:"components"`
}

type info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type components struct {
	Schemas map[string]*jsonschema.Schema `json:"schemas"`
}

type pathItem struct {
	Get  *operation `json:"get,omitempty"`
	Post *operation `json:"post,omitempty"`
}

type operation struct {
	OperationID string              `json:"operationId"`
	Description string              `json:"description,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	RequestBody *requestBody        `json:"requestBody,omitempty"`
	Responses   map[string]response `json:"responses"`
}

type requestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]mediaType `json:"content"`
}

type response struct {
	Description string               `json:"description"`
	Content     map[string]mediaType `json:"content,omitempty"`
}

type mediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

// builder converts one semantic schema into one document. It is constructed
// per Generate call so nothing is shared across runs.
type builder struct {
	sem *semantic.Schema
}

// Generate builds components.schemas from the type definitions and one path
// per endpoint, then marshals the document with stable two-space indentation.
func (g *Generator) Generate(s *semantic.Schema, _ generate.Options) ([]byte, error) {
	b := &builder{sem: s}

	doc := document{
		OpenAPI: "3.1.0",
		Info: info{
			Title:       s.Name,
			Description: s.Description,
			Version:     "0.1.0",
		},
		Paths:      map[string]pathItem{},
		Components: components{Schemas: map[string]*jsonschema.Schema{}},
	}

	for _, def := range s.Types() {
		name, js := b.componentSchema(def)
		if js == nil {
			continue
		}
		doc.Components.Schemas[name] = js
	}

	for _, fn := range s.Functions() {
		path, item := b.pathItem(fn)
		doc.Paths[path] = item
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal openapi document")
	}
	return append(out, '\n'), nil
}

func componentName(name string) string {
	return generate.ToPascalCase(name)
}

func componentRef(name string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: "#/components/schemas/" + componentName(name)}
}

// tagSchema is the synthetic string type constraining a discriminator tag to
// one literal value.
func (b *builder) tagSchema(value string) *jsonschema.Schema {
	v := any(value)
	return &jsonschema.Schema{Type: "string", Const: &v}
}

func (b *builder) componentSchema(def semantic.TypeDef) (string, *jsonschema.Schema) {
	switch v := def.(type) {
	case *semantic.StructDef:
		return componentName(v.Name), b.structSchema(v)
	case *semantic.EnumDef:
		return componentName(v.Name), b.enumSchema(v)
	case *semantic.PrimitiveDef:
		if wellKnownSchema(v.Name) != nil || schema.IsIndirection(v.Name) {
			return "", nil
		}
		js := &jsonschema.Schema{Description: v.Description}
		if v.Fallback != nil {
			js = b.refSchema(*v.Fallback)
			js.Description = v.Description
		}
		return componentName(v.Name), js
	}
	return "", nil
}

func (b *builder) structSchema(def *semantic.StructDef) *jsonschema.Schema {
	if len(def.Fields) == 1 && def.Fields[0].Name == "0" {
		js := b.refSchema(def.Fields[0].Type)
		js.Description = def.Description
		return js
	}
	return b.fieldsSchema(def.Fields, def.Description)
}

func (b *builder) fieldsSchema(fields []semantic.FieldDef, description string) *jsonschema.Schema {
	js := &jsonschema.Schema{
		Type:        "object",
		Description: description,
		Properties:  map[string]*jsonschema.Schema{},
	}
	for _, f := range fields {
		prop := b.refSchema(f.Type)
		if f.Description != "" {
			prop.Description = f.Description
		}
		js.Properties[f.WireName()] = prop
		if f.Required {
			js.Required = append(js.Required, f.WireName())
		}
	}
	return js
}

func (b *builder) enumSchema(def *semantic.EnumDef) *jsonschema.Schema {
	rep := def.Representation

	// A unit-only externally-tagged enum is a plain string enum.
	if rep.EffectiveKind() == schema.RepresentationExternal && unitOnly(def) {
		values := make([]any, len(def.Variants))
		for i, v := range def.Variants {
			values[i] = v.WireName()
		}
		return &jsonschema.Schema{Type: "string", Enum: values, Description: def.Description}
	}

	var arms []*jsonschema.Schema
	for _, v := range def.Variants {
		arms = append(arms, b.variantSchema(rep, v))
	}
	return &jsonschema.Schema{OneOf: arms, Description: def.Description}
}

func (b *builder) variantSchema(rep schema.Representation, v semantic.VariantDef) *jsonschema.Schema {
	payload := b.variantPayload(v)
	switch rep.EffectiveKind() {
	case schema.RepresentationInternal:
		js := payload
		if js == nil || js.Type != "object" {
			js = &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}}
		}
		js.Properties[rep.Tag] = b.tagSchema(v.WireName())
		js.Required = append(js.Required, rep.Tag)
		return js
	case schema.RepresentationAdjacent:
		js := &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{rep.Tag: b.tagSchema(v.WireName())},
			Required:   []string{rep.Tag},
		}
		if payload != nil {
			js.Properties[rep.Content] = payload
			js.Required = append(js.Required, rep.Content)
		}
		return js
	case schema.RepresentationNone:
		if payload == nil {
			return &jsonschema.Schema{Type: "null"}
		}
		return payload
	default: // external
		if v.Untagged || payload == nil {
			return b.tagSchema(v.WireName())
		}
		return &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{v.WireName(): payload},
			Required:   []string{v.WireName()},
		}
	}
}

func (b *builder) variantPayload(v semantic.VariantDef) *jsonschema.Schema {
	if len(v.Fields) == 0 {
		return nil
	}
	if len(v.Fields) == 1 && v.Fields[0].Name == "0" {
		return b.refSchema(v.Fields[0].Type)
	}
	return b.fieldsSchema(v.Fields, "")
}

func unitOnly(def *semantic.EnumDef) bool {
	if len(def.Variants) == 0 {
		return false
	}
	for _, v := range def.Variants {
		if len(v.Fields) > 0 {
			return false
		}
	}
	return true
}

func (b *builder) pathItem(fn semantic.FunctionDef) (string, pathItem) {
	path := fn.Path
	if path == "" {
		path = "/" + fn.Name
	}

	op := &operation{
		OperationID: fn.Name,
		Description: fn.Description,
		Responses:   map[string]response{},
	}
	if module, _, ok := strings.Cut(fn.Name, "."); ok {
		op.Tags = []string{module}
	}
	if fn.Input != nil {
		op.RequestBody = &requestBody{
			Required: true,
			Content:  map[string]mediaType{"application/json": {Schema: b.refSchema(*fn.Input)}},
		}
	}
	ok := response{Description: "successful response"}
	if fn.Output != nil {
		ok.Content = map[string]mediaType{"application/json": {Schema: b.refSchema(*fn.Output)}}
	}
	op.Responses["200"] = ok
	if fn.Error != nil {
		op.Responses["default"] = response{
			Description: "error response",
			Content:     map[string]mediaType{"application/json": {Schema: b.refSchema(*fn.Error)}},
		}
	}

	if fn.Readonly && fn.Input == nil {
		return path, pathItem{Get: op}
	}
	return path, pathItem{Post: op}
}

// wellKnownSchema maps schema primitives to inline JSON Schemas; nil means
// the name is not well known.
func wellKnownSchema(name string) *jsonschema.Schema {
	switch name {
	case "string", "str", "char":
		return &jsonschema.Schema{Type: "string"}
	case "u8", "u16", "u32", "u64", "u128", "i8", "i16", "i32", "i64", "i128", "usize", "isize":
		return &jsonschema.Schema{Type: "integer"}
	case "f32", "f64":
		return &jsonschema.Schema{Type: "number"}
	case "bool":
		return &jsonschema.Schema{Type: "boolean"}
	case "unit":
		return &jsonschema.Schema{Type: "null"}
	case "DateTime":
		return &jsonschema.Schema{Type: "string", Format: "date-time"}
	case "Date":
		return &jsonschema.Schema{Type: "string", Format: "date"}
	case "Time":
		return &jsonschema.Schema{Type: "string", Format: "time"}
	case "Duration":
		return &jsonschema.Schema{Type: "string", Format: "duration"}
	case "Uuid":
		return &jsonschema.Schema{Type: "string", Format: "uuid"}
	case "Bytes":
		return &jsonschema.Schema{Type: "string", Format: "byte"}
	}
	return nil
}

func (b *builder) refSchema(ref semantic.ResolvedTypeReference) *jsonschema.Schema {
	if js := wellKnownSchema(ref.Name); js != nil {
		return js
	}
	arg := func(i int) *jsonschema.Schema {
		if i < len(ref.Arguments) {
			return b.refSchema(ref.Arguments[i])
		}
		return &jsonschema.Schema{}
	}
	switch ref.Name {
	case "Vec", "HashSet", "BTreeSet", "Tuple":
		return &jsonschema.Schema{Type: "array", Items: arg(0)}
	case "HashMap", "BTreeMap":
		return &jsonschema.Schema{Type: "object", AdditionalProperties: arg(1)}
	case "Option":
		return &jsonschema.Schema{OneOf: []*jsonschema.Schema{arg(0), {Type: "null"}}}
	case "Result":
		return &jsonschema.Schema{OneOf: []*jsonschema.Schema{arg(0), arg(1)}}
	case schema.IndirectBoxed, schema.IndirectDefer, schema.IndirectCounted:
		return arg(0)
	}
	if ref.IsGenericParameter() {
		// Generic parameters have no closed schema; accept anything.
		return &jsonschema.Schema{Description: fmt.Sprintf("generic parameter %s", ref.Name)}
	}
	return componentRef(ref.Name)
}
