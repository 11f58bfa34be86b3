package openapi

import (
	"embed"
	"io/fs"
)

//go:embed contract/*.yaml
var embeddedContract embed.FS

const (
	// ContactOperationID names the operation whose request body declares the
	// contact form fields.
	ContactOperationID = "sendContactMessage"
	// ContactContractName is the embedded contract path within ContractFS.
	ContactContractName = "contact.yaml"
)

// ContractFS exposes the embedded contract bundle.
func ContractFS() fs.FS {
	sub, err := fs.Sub(embeddedContract, "contract")
	if err != nil {
		return embeddedContract
	}
	return sub
}

// ContactSource returns the Source for the embedded contact contract.
func ContactSource() Source {
	return SourceFromFS(ContactContractName)
}
