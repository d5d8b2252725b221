// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package rust renders a semantic schema as serde-annotated Rust type
// definitions.
package rust

import (
	"fmt"
	"strings"

	"github.com/dacolabs/reflectgen/internal/generate"
	"github.com/dacolabs/reflectgen/internal/schema"
	"github.com/dacolabs/reflectgen/internal/semantic"
)

// Generator renders Rust.
type Generator struct{}

func (g *Generator) Name() string { return "rust" }

func (g *Generator) FileExtension() string { return ".rs" }

// Generate renders structs and enums with serde derives. Rust resolves items
// in any order, so emission follows the stable symbol order rather than the
// dependency order.
func (g *Generator) Generate(s *semantic.Schema, opts generate.Options) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("// Code generated by reflectgen. DO NOT EDIT.\n\n")
	sb.WriteString("#![allow(dead_code, clippy::all)]\n\n")
	sb.WriteString("use serde::{Deserialize, Serialize};\n\n")

	for _, def := range s.Types() {
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
		writeClient(&sb, s)
	}

	return []byte(sb.String()), nil
}

func rsName(name string) string {
	return generate.ToPascalCase(name)
}

func writeDoc(sb *strings.Builder, indent, description string) {
	if description == "" {
		return
	}
	for _, line := range strings.Split(description, "\n") {
		fmt.Fprintf(sb, "%s/// %s\n", indent, line)
	}
}

func writeStruct(sb *strings.Builder, def *semantic.StructDef) {
	writeDoc(sb, "", def.Description)
	name := rsName(def.Name) + typeParams(def.Parameters)

	if len(def.Fields) == 1 && def.Fields[0].Name == "0" {
		sb.WriteString(derive())
		fmt.Fprintf(sb, "pub struct %s(pub %s);\n\n", name, typeString(def.Fields[0].Type, false))
		return
	}
	if isTupleFields(def.Fields) {
		sb.WriteString(derive())
		elems := make([]string, len(def.Fields))
		for i, f := range def.Fields {
			elems[i] = "pub " + typeString(f.Type, !f.Required)
		}
		fmt.Fprintf(sb, "pub struct %s(%s);\n\n", name, strings.Join(elems, ", "))
		return
	}

	sb.WriteString(derive())
	if def.SerdeName != "" && def.SerdeName != def.Name {
		fmt.Fprintf(sb, "#[serde(rename = %q)]\n", def.SerdeName)
	}
	if def.Transparent {
		sb.WriteString("#[serde(transparent)]\n")
	}
	fmt.Fprintf(sb, "pub struct %s {\n", name)
	writeFields(sb, def.Fields, "    ")
	sb.WriteString("}\n\n")
}

func writeFields(sb *strings.Builder, fields []semantic.FieldDef, indent string) {
	for _, f := range fields {
		writeDoc(sb, indent, f.Description)
		fname := generate.ToSnakeCase(f.Name)
		if f.SerdeName != "" && f.SerdeName != fname {
			fmt.Fprintf(sb, "%s#[serde(rename = %q)]\n", indent, f.SerdeName)
		}
		if f.Flattened {
			fmt.Fprintf(sb, "%s#[serde(flatten)]\n", indent)
		}
		if !f.Required {
			fmt.Fprintf(sb, "%s#[serde(default, skip_serializing_if = \"Option::is_none\")]\n", indent)
		}
		fmt.Fprintf(sb, "%spub %s: %s,\n", indent, fname, typeString(f.Type, !f.Required))
	}
}

func writeEnum(sb *strings.Builder, def *semantic.EnumDef) {
	writeDoc(sb, "", def.Description)
	sb.WriteString(derive())
	writeRepresentation(sb, def.Representation)
	fmt.Fprintf(sb, "pub enum %s {\n", rsName(def.Name)+typeParams(def.Parameters))
	for _, v := range def.Variants {
		writeVariant(sb, v)
	}
	sb.WriteString("}\n\n")
}

func writeRepresentation(sb *strings.Builder, rep schema.Representation) {
	switch rep.EffectiveKind() {
	case schema.RepresentationInternal:
		fmt.Fprintf(sb, "#[serde(tag = %q)]\n", rep.Tag)
	case schema.RepresentationAdjacent:
		fmt.Fprintf(sb, "#[serde(tag = %q, content = %q)]\n", rep.Tag, rep.Content)
	case schema.RepresentationNone:
		sb.WriteString("#[serde(untagged)]\n")
	}
}

func writeVariant(sb *strings.Builder, v semantic.VariantDef) {
	writeDoc(sb, "    ", v.Description)
	name := rsName(v.Name)
	if v.SerdeName != "" && v.SerdeName != name {
		fmt.Fprintf(sb, "    #[serde(rename = %q)]\n", v.SerdeName)
	}
	if v.Untagged {
		sb.WriteString("    #[serde(untagged)]\n")
	}
	switch {
	case len(v.Fields) == 0:
		if v.Discriminant != nil {
			fmt.Fprintf(sb, "    %s = %d,\n", name, *v.Discriminant)
		} else {
			fmt.Fprintf(sb, "    %s,\n", name)
		}
	case isTupleFields(v.Fields):
		elems := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			elems[i] = typeString(f.Type, !f.Required)
		}
		fmt.Fprintf(sb, "    %s(%s),\n", name, strings.Join(elems, ", "))
	default:
		fmt.Fprintf(sb, "    %s {\n", name)
		for _, f := range v.Fields {
			fname := generate.ToSnakeCase(f.Name)
			if f.SerdeName != "" && f.SerdeName != fname {
				fmt.Fprintf(sb, "        #[serde(rename = %q)]\n", f.SerdeName)
			}
			fmt.Fprintf(sb, "        %s: %s,\n", fname, typeString(f.Type, !f.Required))
		}
		sb.WriteString("    },\n")
	}
}

func writePrimitive(sb *strings.Builder, def *semantic.PrimitiveDef) {
	if wellKnown(def.Name) != "" || schema.IsIndirection(def.Name) {
		return
	}
	writeDoc(sb, "", def.Description)
	target := "serde_json::Value"
	if def.Fallback != nil {
		target = typeString(*def.Fallback, false)
	}
	fmt.Fprintf(sb, "pub type %s = %s;\n\n", rsName(def.Name)+typeParams(def.Parameters), target)
}

func writeClient(sb *strings.Builder, s *semantic.Schema) {
	sb.WriteString(`pub struct Client {
    pub base_url: String,
    http: reqwest::Client,
}

impl Client {
    pub fn new(base_url: impl Into<String>) -> Self {
        Self { base_url: base_url.into(), http: reqwest::Client::new() }
    }

    async fn request<I: Serialize, O: serde::de::DeserializeOwned>(
        &self,
        path: &str,
        input: &I,
    ) -> Result<O, reqwest::Error> {
        self.http
            .post(format!("{}{}", self.base_url, path))
            .json(input)
            .send()
            .await?
            .error_for_status()?
            .json()
            .await
    }

`)
	for _, fn := range s.Functions() {
		writeMethod(sb, fn)
	}
	sb.WriteString("}\n")
}

func writeMethod(sb *strings.Builder, fn semantic.FunctionDef) {
	writeDoc(sb, "    ", fn.Description)
	name := generate.ToSnakeCase(fn.Name)
	input := "()"
	if fn.Input != nil {
		input = typeString(*fn.Input, false)
	}
	output := "()"
	if fn.Output != nil {
		output = typeString(*fn.Output, false)
	}
	path := fn.Path
	if path == "" {
		path = "/" + fn.Name
	}
	fmt.Fprintf(sb, "    pub async fn %s(&self, input: &%s) -> Result<%s, reqwest::Error> {\n", name, input, output)
	fmt.Fprintf(sb, "        self.request(%q, input).await\n", path)
	sb.WriteString("    }\n\n")
}

func derive() string {
	return "#[derive(Debug, Clone, Serialize, Deserialize)]\n"
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

// wellKnown maps schema primitives to Rust types; "" means not well known.
func wellKnown(name string) string {
	switch name {
	case "string":
		return "String"
	case "str":
		return "String"
	case "char":
		return "char"
	case "u8", "u16", "u32", "u64", "u128", "i8", "i16", "i32", "i64", "i128", "f32", "f64", "bool":
		return name
	case "usize":
		return "usize"
	case "isize":
		return "isize"
	case "unit":
		return "()"
	case "DateTime":
		return "chrono::DateTime<chrono::Utc>"
	case "Date":
		return "chrono::NaiveDate"
	case "Time":
		return "chrono::NaiveTime"
	case "Duration":
		return "std::time::Duration"
	case "Uuid":
		return "uuid::Uuid"
	case "Bytes":
		return "Vec<u8>"
	}
	return ""
}

func typeString(ref semantic.ResolvedTypeReference, optional bool) string {
	inner := rawTypeString(ref)
	if optional {
		return "Option<" + inner + ">"
	}
	return inner
}

func rawTypeString(ref semantic.ResolvedTypeReference) string {
	if mapped := wellKnown(ref.Name); mapped != "" {
		return mapped
	}
	arg := func(i int) string {
		if i < len(ref.Arguments) {
			return rawTypeString(ref.Arguments[i])
		}
		return "serde_json::Value"
	}
	switch ref.Name {
	case "Vec":
		return "Vec<" + arg(0) + ">"
	case "HashSet":
		return "std::collections::HashSet<" + arg(0) + ">"
	case "BTreeSet":
		return "std::collections::BTreeSet<" + arg(0) + ">"
	case "HashMap":
		return "std::collections::HashMap<" + arg(0) + ", " + arg(1) + ">"
	case "BTreeMap":
		return "std::collections::BTreeMap<" + arg(0) + ", " + arg(1) + ">"
	case "Option":
		return "Option<" + arg(0) + ">"
	case "Result":
		return "Result<" + arg(0) + ", " + arg(1) + ">"
	case "Tuple":
		elems := make([]string, len(ref.Arguments))
		for i := range ref.Arguments {
			elems[i] = arg(i)
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case schema.IndirectBoxed:
		return "Box<" + arg(0) + ">"
	case schema.IndirectCounted:
		return "std::rc::Rc<" + arg(0) + ">"
	case schema.IndirectDefer:
		return "Box<" + arg(0) + ">"
	}
	if ref.IsGenericParameter() {
		return ref.Name
	}
	out := rsName(ref.Name)
	if len(ref.Arguments) > 0 {
		elems := make([]string, len(ref.Arguments))
		for i := range ref.Arguments {
			elems[i] = arg(i)
		}
		out += "<" + strings.Join(elems, ", ") + ">"
	}
	return out
}
