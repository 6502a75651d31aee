package render

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/seitarof/gen-dtl/internal/descriptor"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var moduleTmpl = template.Must(template.ParseFS(templateFS, "templates/module.d.tl.tmpl"))

// ModuleData is everything the outer module declaration needs.
type ModuleData struct {
	Name   string
	Global bool

	// Blocks are already rendered type declarations, in output order.
	Blocks []string

	Instances []descriptor.GlobalInstance
}

type moduleTemplateData struct {
	Scope     string
	Name      string
	Body      string
	Instances []instanceTemplateData
}

type instanceTemplateData struct {
	Name string
	Type string
}

// Module composes the final declaration file:
//
//	<global|local> record <Name>
//	<blocks joined by newlines>
//	end
//	global <instance>: <type>
//	return <Name>
func Module(data ModuleData) (string, error) {
	scope := "local"
	if data.Global {
		scope = "global"
	}
	instances := make([]instanceTemplateData, 0, len(data.Instances))
	for _, inst := range data.Instances {
		instances = append(instances, instanceTemplateData{
			Name: inst.Name,
			Type: InstanceType(data.Name, inst),
		})
	}

	var buf bytes.Buffer
	err := moduleTmpl.Execute(&buf, moduleTemplateData{
		Scope:     scope,
		Name:      data.Name,
		Body:      strings.Join(data.Blocks, "\n"),
		Instances: instances,
	})
	if err != nil {
		return "", errors.Wrap(err, "template")
	}
	if err := checkText(data.Name, buf.String()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// InstanceType resolves the type an instance is declared with, qualifying
// external types with the module name.
func InstanceType(module string, inst descriptor.GlobalInstance) string {
	if inst.External {
		return module + "." + inst.Type.String()
	}
	return inst.Type.String()
}
