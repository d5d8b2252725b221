// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package python renders a semantic schema as Python dataclasses and a small
// requests-free client class.
package python

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dacolabs/reflectgen/internal/generate"
	"github.com/dacolabs/reflectgen/internal/schema"
	"github.com/dacolabs/reflectgen/internal/semantic"
)

// Generator renders Python.
type Generator struct{}

func (g *Generator) Name() string { return "python" }

func (g *Generator) FileExtension() string { return ".py" }

// Generate renders dataclasses for structs, enums or variant unions for sum
// types, and a Client class wrapping the endpoints. Forward references are
// legal under `from __future__ import annotations`, but declaration order
// still follows the dependency order for readability.
func (g *Generator) Generate(s *semantic.Schema, opts generate.Options) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("# Code generated by reflectgen. DO NOT EDIT.\n")
	if opts.Package != "" {
		fmt.Fprintf(&sb, "# Module: %s\n", opts.Package)
	}
	sb.WriteString("from __future__ import annotations\n\n")
	sb.WriteString("import dataclasses\n")
	sb.WriteString("import enum\n")
	sb.WriteString("import json\n")
	sb.WriteString("import typing\n")
	sb.WriteString("import urllib.request\n\n")

	writeTypeVars(&sb, s)

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
		writeClient(&sb, s)
	}

	return []byte(sb.String()), nil
}

func pyName(name string) string {
	return generate.ToPascalCase(name)
}

func writeStruct(sb *strings.Builder, def *semantic.StructDef) {
	name := pyName(def.Name)

	if len(def.Fields) == 1 && def.Fields[0].Name == "0" {
		fmt.Fprintf(sb, "%s = %s\n\n", name, typeString(def.Fields[0].Type))
		return
	}
	if isTupleFields(def.Fields) {
		elems := make([]string, len(def.Fields))
		for i, f := range def.Fields {
			elems[i] = typeString(f.Type)
		}
		fmt.Fprintf(sb, "%s = typing.Tuple[%s]\n\n", name, strings.Join(elems, ", "))
		return
	}

	sb.WriteString("@dataclasses.dataclass\n")
	if len(def.Parameters) > 0 {
		fmt.Fprintf(sb, "class %s(typing.Generic[%s]):\n", name, strings.Join(def.Parameters, ", "))
	} else {
		fmt.Fprintf(sb, "class %s:\n", name)
	}
	if def.Description != "" {
		fmt.Fprintf(sb, "    \"\"\"%s\"\"\"\n", def.Description)
	}
	if len(def.Fields) == 0 {
		sb.WriteString("    pass\n\n")
		return
	}

	// Dataclass rules: defaulted fields must follow required ones.
	var required, optional []semantic.FieldDef
	for _, f := range def.Fields {
		if f.Required {
			required = append(required, f)
		} else {
			optional = append(optional, f)
		}
	}
	for _, f := range required {
		fmt.Fprintf(sb, "    %s: %s\n", fieldName(f), typeString(f.Type))
	}
	for _, f := range optional {
		fmt.Fprintf(sb, "    %s: typing.Optional[%s] = None\n", fieldName(f), typeString(f.Type))
	}
	sb.WriteString("\n")
}

// fieldName keeps the declared name; the wire name differs only through serde
// renames, which the client applies during encoding.
func fieldName(f semantic.FieldDef) string {
	return generate.ToSnakeCase(f.Name)
}

// writeTypeVars declares every generic parameter name used anywhere in the
// schema as a module-level TypeVar, each exactly once.
func writeTypeVars(sb *strings.Builder, s *semantic.Schema) {
	seen := map[string]struct{}{}
	var names []string
	for _, def := range s.Types() {
		var params []string
		switch v := def.(type) {
		case *semantic.StructDef:
			params = v.Parameters
		case *semantic.EnumDef:
			params = v.Parameters
		case *semantic.PrimitiveDef:
			params = v.Parameters
		}
		for _, p := range params {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				names = append(names, p)
			}
		}
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(sb, "%s = typing.TypeVar(%q)\n", n, n)
	}
	if len(names) > 0 {
		sb.WriteString("\n")
	}
}

func writeEnum(sb *strings.Builder, def *semantic.EnumDef) {
	name := pyName(def.Name)

	if unitOnly(def) {
		fmt.Fprintf(sb, "class %s(enum.Enum):\n", name)
		if def.Description != "" {
			fmt.Fprintf(sb, "    \"\"\"%s\"\"\"\n", def.Description)
		}
		for _, v := range def.Variants {
			fmt.Fprintf(sb, "    %s = %q\n", enumMember(v.Name), v.WireName())
		}
		sb.WriteString("\n")
		return
	}

	// Data-carrying variants become one dataclass each plus a union alias.
	var members []string
	for _, v := range def.Variants {
		memberName := name + pyName(v.Name)
		members = append(members, memberName)
		sb.WriteString("@dataclasses.dataclass\n")
		fmt.Fprintf(sb, "class %s:\n", memberName)
		if v.Description != "" {
			fmt.Fprintf(sb, "    \"\"\"%s\"\"\"\n", v.Description)
		}
		if len(v.Fields) == 0 {
			sb.WriteString("    pass\n")
		}
		for _, f := range v.Fields {
			fname := fieldName(f)
			if fname == "" || f.Name == "0" {
				fname = "value"
			}
			if f.Required {
				fmt.Fprintf(sb, "    %s: %s\n", fname, typeString(f.Type))
			} else {
				fmt.Fprintf(sb, "    %s: typing.Optional[%s] = None\n", fname, typeString(f.Type))
			}
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(sb, "%s = typing.Union[%s]\n\n", name, strings.Join(members, ", "))
}

func enumMember(name string) string {
	out := strings.ToUpper(generate.ToSnakeCase(name))
	if out == "" {
		return "UNKNOWN"
	}
	return out
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

func writePrimitive(sb *strings.Builder, def *semantic.PrimitiveDef) {
	if wellKnown(def.Name) != "" || schema.IsIndirection(def.Name) {
		return
	}
	target := "typing.Any"
	if def.Fallback != nil {
		target = typeString(*def.Fallback)
	}
	fmt.Fprintf(sb, "%s = %s\n\n", pyName(def.Name), target)
}

func writeClient(sb *strings.Builder, s *semantic.Schema) {
	sb.WriteString(`class Client:
    def __init__(self, base_url: str, headers: typing.Optional[typing.Dict[str, str]] = None) -> None:
        self.base_url = base_url.rstrip("/")
        self.headers = headers or {}

    def _request(self, path: str, payload: typing.Any) -> typing.Any:
        body = json.dumps(payload, default=_encode).encode()
        req = urllib.request.Request(
            self.base_url + path,
            data=body,
            headers={"content-type": "application/json", **self.headers},
            method="POST",
        )
        with urllib.request.urlopen(req) as resp:
            return json.loads(resp.read())

`)
	for _, fn := range s.Functions() {
		writeMethod(sb, fn)
	}
	sb.WriteString(`
def _encode(value: typing.Any) -> typing.Any:
    if dataclasses.is_dataclass(value):
        return dataclasses.asdict(value)
    if isinstance(value, enum.Enum):
        return value.value
    raise TypeError(f"cannot encode {type(value)!r}")
`)
}

func writeMethod(sb *strings.Builder, fn semantic.FunctionDef) {
	name := methodName(fn.Name)
	params := "self"
	payload := "None"
	if fn.Input != nil {
		params += ", input: " + typeString(*fn.Input)
		payload = "input"
	}
	output := "None"
	if fn.Output != nil {
		output = typeString(*fn.Output)
	}
	path := fn.Path
	if path == "" {
		path = "/" + fn.Name
	}
	fmt.Fprintf(sb, "    def %s(%s) -> %s:\n", name, params, output)
	if fn.Description != "" {
		fmt.Fprintf(sb, "        \"\"\"%s\"\"\"\n", fn.Description)
	}
	fmt.Fprintf(sb, "        return self._request(%q, %s)\n\n", path, payload)
}

func methodName(name string) string {
	return generate.ToSnakeCase(name)
}

func isTupleFields(fields []semantic.FieldDef) bool {
	if len(fields) < 2 {
		return false
	}
	for i, f := range fields {
		if f.Name != fmt.Sprint(i) {
			return false
		}
	}
	return true
}

// wellKnown maps schema primitives to Python types; "" means not well known.
func wellKnown(name string) string {
	switch name {
	case "string", "str", "char", "Uuid":
		return "str"
	case "u8", "u16", "u32", "u64", "u128", "i8", "i16", "i32", "i64", "i128", "usize", "isize":
		return "int"
	case "f32", "f64", "Duration":
		return "float"
	case "bool":
		return "bool"
	case "unit":
		return "None"
	case "DateTime", "Date", "Time":
		return "str"
	case "Bytes":
		return "bytes"
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
		return "typing.Any"
	}
	switch ref.Name {
	case "Vec":
		return "typing.List[" + arg(0) + "]"
	case "HashSet", "BTreeSet":
		return "typing.Set[" + arg(0) + "]"
	case "HashMap", "BTreeMap":
		return "typing.Dict[" + arg(0) + ", " + arg(1) + "]"
	case "Option":
		return "typing.Optional[" + arg(0) + "]"
	case "Result":
		return "typing.Union[" + arg(0) + ", " + arg(1) + "]"
	case "Tuple":
		elems := make([]string, len(ref.Arguments))
		for i := range ref.Arguments {
			elems[i] = arg(i)
		}
		return "typing.Tuple[" + strings.Join(elems, ", ") + "]"
	case schema.IndirectBoxed, schema.IndirectDefer, schema.IndirectCounted:
		return arg(0)
	}
	if ref.IsGenericParameter() {
		return ref.Name
	}
	out := pyName(ref.Name)
	if len(ref.Arguments) > 0 {
		elems := make([]string, len(ref.Arguments))
		for i := range ref.Arguments {
			elems[i] = arg(i)
		}
		out += "[" + strings.Join(elems, ", ") + "]"
	}
	return out
}
