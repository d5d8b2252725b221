// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

// SerializationMode names a wire format an endpoint speaks.
type SerializationMode string

const (
	SerializationJSON        SerializationMode = "json"
	SerializationMessagePack SerializationMode = "msgpack"
)

// Function is an exposed API endpoint. Input references resolve against the
// schema's input typespace; output and error references against the output
// typespace.
type Function struct {
	Name          string              `json:"name"`
	Path          string              `json:"path,omitempty"`
	Description   string              `json:"description,omitempty"`
	InputType     *TypeReference      `json:"input_type,omitempty"`
	InputHeaders  *TypeReference      `json:"input_headers,omitempty"`
	OutputType    *TypeReference      `json:"output_type,omitempty"`
	ErrorType     *TypeReference      `json:"error_type,omitempty"`
	Serialization []SerializationMode `json:"serialization,omitempty"`
	Readonly      bool                `json:"readonly,omitempty"`
}

func (f *Function) renameRefs(search, replace string) {
	f.renameInputRefs(search, replace)
	f.renameOutputRefs(search, replace)
}

func (f *Function) renameInputRefs(search, replace string) {
	if f.InputType != nil {
		f.InputType.rename(search, replace)
	}
	if f.InputHeaders != nil {
		f.InputHeaders.rename(search, replace)
	}
}

func (f *Function) renameOutputRefs(search, replace string) {
	if f.OutputType != nil {
		f.OutputType.rename(search, replace)
	}
	if f.ErrorType != nil {
		f.ErrorType.rename(search, replace)
	}
}

// SignatureRefs returns the non-nil references of the function signature.
func (f *Function) SignatureRefs() []*TypeReference {
	var refs []*TypeReference
	for _, r := range []*TypeReference{f.InputType, f.InputHeaders, f.OutputType, f.ErrorType} {
		if r != nil {
			refs = append(refs, r)
		}
	}
	return refs
}
