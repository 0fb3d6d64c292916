// Package webmanifest checks web application manifests against the manifest
// member rules and reports every violation it finds.
//
// - Validate/Check: pure, collect-all checking of an already parsed manifest.
// - Value/Object: an ordered, immutable JSON value tree; member order is the
//   document order, so findings are reported in the order a reader sees them.
// - ParseJSON/ParseJSONC/ParseYAML/Load: front ends that build the tree, with
//   duplicate-key/depth/size enforcement.
//
// Design policy:
// - Keep only public APIs in the root package; put the token engine under internal/.
// - Place the JSON Schema export under jsonschema/ and the CLI under cmd/webmanifest.
// - Message text is a compatibility contract. Structured data (paths, codes,
//   hints) goes into Issue fields, never into Message.
//
// Typical usage:
//
//	v, err := webmanifest.ParseJSON(data)
//	msgs, err := webmanifest.ValidateValue(v)
//
//	m := webmanifest.NewObject(webmanifest.Field("dir", webmanifest.String("rtl")))
//	iss := webmanifest.Check(m) // iss[i].Path, iss[i].Code, iss[i].Hint
package webmanifest
