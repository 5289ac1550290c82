package observability

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
)

// ExportConfig is shared by the trace and metric pipelines. Both export over
// OTLP/HTTP, normally to the same collector.
type ExportConfig struct {
	ServiceName    string `yaml:"service_name" mapstructure:"service_name"`
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	Environment    string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the collector host:port, e.g. localhost:4318.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure sends plain HTTP.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
}

func defaultExport(service string) ExportConfig {
	return ExportConfig{
		ServiceName:    service,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
	}
}

// resource is schemaless so it merges with resource.Default whatever
// semconv version the SDK was built with.
func (c ExportConfig) resource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String(AttrServiceName, c.ServiceName),
			attribute.String("service.version", c.ServiceVersion),
			attribute.String("deployment.environment", c.Environment),
		),
	)
}
