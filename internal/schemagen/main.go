// Command schemagen regenerates the JSON schema for the RuleSet kind.
// It is invoked via go:generate from the rulesets package.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/uniformal/unicheck/api/v1beta1/rulesets"
	"github.com/uniformal/unicheck/pkg/schema"
)

const schemaID = "https://raw.githubusercontent.com/uniformal/unicheck/refs/heads/main/api/v1beta1/rulesets/rulesets.v1beta1.json"

var outFile = flag.String("o", "schema.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	gen := schema.NewGenerator(rulesets.New(), schemaID, map[string]string{
		"github.com/uniformal/unicheck/api/v1beta1/rulesets": "./",
		"github.com/uniformal/unicheck/api/v1beta1":          "../",
	})

	jsData, err := gen.Generate()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
