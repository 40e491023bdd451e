package settings

import (
	"bytes"
	"encoding/json"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://jdrew1303.github.io/etcher/schemas/settings.schema.json"

const settingsSchema = `{
	"$id": "` + schemaURL + `",
	"type": "object",
	"properties": {
		"unsafeMode": {
			"type": "boolean"
		},
		"errorReporting": {
			"type": "boolean"
		},
		"updatesEnabled": {
			"type": "boolean"
		},
		"desktopNotifications": {
			"type": "boolean"
		}
	}
}`

func validate(data []byte) error {
	compiler := jsonschema.NewCompiler()
	err := compiler.AddResource(schemaURL, strings.NewReader(settingsSchema))
	if err != nil {
		return err
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return err
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var document interface{}
	if err := decoder.Decode(&document); err != nil {
		return err
	}

	return schema.Validate(document)
}
