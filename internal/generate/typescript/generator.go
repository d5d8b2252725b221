// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package typescript renders a semantic schema as TypeScript type
// declarations and a thin async client.
package typescript

import (
	"fmt"
	"strings"

	"github.com/dacolabs/reflectgen/internal/generate"
	"github.com/dacolabs/reflectgen/internal/schema"
	"github.com/dacolabs/reflectgen/internal/semantic"
)

// Generator renders TypeScript.
type Generator struct{}

func (g *Generator) Name() string { return "typescript" }

// FileExtension returns the file extension for TypeScript source files.
func (g *Generator) FileExtension() string { return ".ts" }

// Generate renders the schema's types in declaration order followed by one
// async client function per endpoint.
func (g *Generator) Generate(s *semantic.Schema, _ generate.Options) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("// Code generated by reflectgen. DO NOT EDIT.\n\n")

	for _, id := range s.DeclarationOrder() {
		def, _ := s.Type(id)
		switch v := def.(type) {
		case *semantic.StructDef:
			writeStruct(&sb, v)
		case *semantic.EnumDef:
			writeEnum(&sb, v)
		case *semantic.PrimitiveDef:
			writePrimitive(&sb, v)
		}
	}

	if s.FunctionCount() > 0 {
		writeClientPrelude(&sb)
		for _, fn := range functions(s) {
			writeFunction(&sb, fn)
		}
	}

	return []byte(sb.String()), nil
}

func functions(s *semantic.Schema) []semantic.FunctionDef {
	var out []semantic.FunctionDef
	for _, fn := range s.Functions() {
		out = append(out, fn)
	}
	return out
}

func writeDoc(sb *strings.Builder, description string) {
	if description == "" {
		return
	}
	fmt.Fprintf(sb, "/** %s */\n", description)
}

func writeStruct(sb *strings.Builder, def *semantic.StructDef) {
	writeDoc(sb, def.Description)
	name := tsName(def.Name) + typeParams(def.Parameters)

	if len(def.Fields) == 1 && def.Fields[0].Name == "0" {
		fmt.Fprintf(sb, "export type %s = %s;\n\n", name, typeString(def.Fields[0].Type))
		return
	}
	if isTupleFields(def.Fields) {
		elems := make([]string, len(def.Fields))
		for i, f := range def.Fields {
			elems[i] = typeString(f.Type)
		}
		fmt.Fprintf(sb, "export type %s = [%s];\n\n", name, strings.Join(elems, ", "))
		return
	}

	fmt.Fprintf(sb, "export interface %s {\n", name)
	writeFieldLines(sb, def.Fields, "  ")
	sb.WriteString("}\n\n")
}

func writeFieldLines(sb *strings.Builder, fields []semantic.FieldDef, indent string) {
	for _, f := range fields {
		if f.Description != "" {
			fmt.Fprintf(sb, "%s/** %s */\n", indent, f.Description)
		}
		ts := typeString(f.Type)
		if f.Required {
			fmt.Fprintf(sb, "%s%s: %s;\n", indent, f.WireName(), ts)
		} else {
			// Absent and null are both legal for optional fields.
			fmt.Fprintf(sb, "%s%s?: %s | null;\n", indent, f.WireName(), ts)
		}
	}
}

func writeEnum(sb *strings.Builder, def *semantic.EnumDef) {
	writeDoc(sb, def.Description)
	name := tsName(def.Name) + typeParams(def.Parameters)

	var arms []string
	for _, v := range def.Variants {
		arms = append(arms, variantArm(def.Representation, v))
	}
	if len(arms) == 0 {
		arms = append(arms, "never")
	}
	fmt.Fprintf(sb, "export type %s =\n  | %s;\n\n", name, strings.Join(arms, "\n  | "))
}

func variantArm(rep schema.Representation, v semantic.VariantDef) string {
	payload := variantPayload(v)
	switch rep.EffectiveKind() {
	case schema.RepresentationInternal:
		if payload == "" {
			return fmt.Sprintf("{ %s: %q }", rep.Tag, v.WireName())
		}
		return fmt.Sprintf("({ %s: %q } & %s)", rep.Tag, v.WireName(), payload)
	case schema.RepresentationAdjacent:
		if payload == "" {
			return fmt.Sprintf("{ %s: %q }", rep.Tag, v.WireName())
		}
		return fmt.Sprintf("{ %s: %q; %s: %s }", rep.Tag, v.WireName(), rep.Content, payload)
	case schema.RepresentationNone:
		if payload == "" {
			return "null"
		}
		return payload
	default: // external
		if v.Untagged || payload == "" {
			return fmt.Sprintf("%q", v.WireName())
		}
		return fmt.Sprintf("{ %s: %s }", v.WireName(), payload)
	}
}

func variantPayload(v semantic.VariantDef) string {
	if len(v.Fields) == 0 {
		return ""
	}
	if len(v.Fields) == 1 && v.Fields[0].Name == "0" {
		return typeString(v.Fields[0].Type)
	}
	if isTupleFields(v.Fields) {
		elems := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			elems[i] = typeString(f.Type)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	}
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, f := range v.Fields {
		if i > 0 {
			sb.WriteString("; ")
		}
		if f.Required {
			fmt.Fprintf(&sb, "%s: %s", f.WireName(), typeString(f.Type))
		} else {
			fmt.Fprintf(&sb, "%s?: %s | null", f.WireName(), typeString(f.Type))
		}
	}
	sb.WriteString(" }")
	return sb.String()
}

// writePrimitive renders a custom primitive as an alias of its fallback, or
// unknown when it has none. Well-known primitives never reach here as
// declarations.
func writePrimitive(sb *strings.Builder, def *semantic.PrimitiveDef) {
	if wellKnown(def.Name) != "" || schema.IsIndirection(def.Name) {
		return
	}
	writeDoc(sb, def.Description)
	name := tsName(def.Name) + typeParams(def.Parameters)
	target := "unknown"
	if def.Fallback != nil {
		target = typeString(*def.Fallback)
	}
	fmt.Fprintf(sb, "export type %s = %s;\n\n", name, target)
}

func writeClientPrelude(sb *strings.Builder) {
	sb.WriteString(`export interface ClientOptions {
  baseUrl: string;
  headers?: Record<string, string>;
}

async function request<T>(opts: ClientOptions, path: string, body: unknown): Promise<T> {
  const response = await fetch(opts.baseUrl + path, {
    method: "POST",
    headers: { "content-type": "application/json", ...opts.headers },
    body: JSON.stringify(body),
  });
  if (!response.ok) {
    throw new Error("request failed: " + response.status);
  }
  return (await response.json()) as T;
}

`)
}

func writeFunction(sb *strings.Builder, fn semantic.FunctionDef) {
	writeDoc(sb, fn.Description)
	input := "undefined"
	params := "opts: ClientOptions"
	if fn.Input != nil {
		params += ", input: " + typeString(*fn.Input)
		input = "input"
	}
	output := "void"
	if fn.Output != nil {
		output = typeString(*fn.Output)
	}
	path := fn.Path
	if path == "" {
		path = "/" + fn.Name
	}
	fmt.Fprintf(sb, "export async function %s(%s): Promise<%s> {\n", funcName(fn.Name), params, output)
	fmt.Fprintf(sb, "  return request(opts, %q, %s);\n", path, input)
	sb.WriteString("}\n\n")
}

func funcName(name string) string {
	parts := strings.Split(name, ".")
	for i := 1; i < len(parts); i++ {
		parts[i] = generate.ToPascalCase(parts[i])
	}
	return strings.Join(parts, "")
}

func typeParams(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func isTupleFields(fields []semantic.FieldDef) bool {
	if len(fields) == 0 {
		return false
	}
	for i, f := range fields {
		if f.Name != fmt.Sprint(i) {
			return false
		}
	}
	return true
}

func tsName(name string) string {
	return generate.ToPascalCase(name)
}

// wellKnown maps schema primitives to TypeScript types; "" means the name is
// not well known.
func wellKnown(name string) string {
	switch name {
	case "string", "str", "char", "DateTime", "Date", "Time", "Uuid", "Bytes":
		return "string"
	case "u8", "u16", "u32", "i8", "i16", "i32", "f32", "f64", "usize", "isize", "Duration":
		return "number"
	case "u64", "i64", "u128", "i128":
		return "bigint"
	case "bool":
		return "boolean"
	case "unit":
		return "null"
	}
	return ""
}

func typeString(ref semantic.ResolvedTypeReference) string {
	if mapped := wellKnown(ref.Name); mapped != "" {
		return mapped
	}
	arg := func(i int) string {
		if i < len(ref.Arguments) {
			return typeString(ref.Arguments[i])
		}
		return "unknown"
	}
	switch ref.Name {
	case "Vec", "HashSet", "BTreeSet":
		return "Array<" + arg(0) + ">"
	case "HashMap", "BTreeMap":
		return "Record<string, " + arg(1) + ">"
	case "Option":
		return arg(0) + " | null"
	case "Result":
		return arg(0) + " | " + arg(1)
	case "Tuple":
		elems := make([]string, len(ref.Arguments))
		for i := range ref.Arguments {
			elems[i] = arg(i)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case schema.IndirectBoxed, schema.IndirectCounted:
		// Heap indirection has no TypeScript meaning; elide it.
		return arg(0)
	case schema.IndirectDefer:
		return arg(0)
	}
	if ref.IsGenericParameter() {
		return ref.Name
	}
	out := tsName(ref.Name)
	if len(ref.Arguments) > 0 {
		elems := make([]string, len(ref.Arguments))
		for i := range ref.Arguments {
			elems[i] = arg(i)
		}
		out += "<" + strings.Join(elems, ", ") + ">"
	}
	return out
}
