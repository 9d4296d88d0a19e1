package packages

import _ "embed"

// manifestYAML contains the embedded package manifest.
// Edit manifest.yaml to change the package set; it is compiled into the binary
// so the tool works without a checkout.
//
//go:embed manifest.yaml
var manifestYAML []byte
