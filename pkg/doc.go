// Package pkg provides the libraries behind the opencga client.
//
// # Overview
//
// The client talks to the REST API of an OpenCGA server. The pkg directory
// is organized into three areas:
//
//  1. [rest] - HTTP transport, request options and error mapping
//  2. [rest/operation] - The variant storage operation endpoints
//  3. Supporting packages: [config], [session], [errors], [observability]
//     and [buildinfo]
//
// # Architecture
//
// A request flows through the packages like this:
//
//	config file / env / flags
//	         ↓
//	    [config] package (resolve host, API version, timeout)
//	         ↓
//	    [rest] package (build URL, encode options, send, map status)
//	         ↓
//	    [rest/operation] package (one method per endpoint)
//	         ↓
//	    raw JSON response
//
// # Quick Start
//
// Submit a variant aggregation job:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/opencga/pkg/rest"
//	    "github.com/matzehuels/opencga/pkg/rest/operation"
//	)
//
//	rc, err := rest.NewClient(rest.Config{
//	    Host:  "https://ws.opencb.org/opencga-prod",
//	    Token: token,
//	})
//	if err != nil {
//	    return err
//	}
//	ops := operation.NewClient(rc)
//
//	opts := operation.JobOptions{ID: "agg-1"}.Options()
//	opts.Set(operation.ParamStudy, "user@project:study")
//	resp, err := ops.AggregateVariant(context.Background(), operation.VariantAggregateParams{Overwrite: true}, opts)
//
// # Errors
//
// Every failure carries an [errors.Code] such as NOT_FOUND, UNAUTHORIZED or
// TIMEOUT. Test for them with errors.Is from this module:
//
//	if errors.Is(err, errors.ErrCodeUnauthorized) {
//	    // token expired or missing
//	}
//
// [rest]: https://pkg.go.dev/github.com/matzehuels/opencga/pkg/rest
// [rest/operation]: https://pkg.go.dev/github.com/matzehuels/opencga/pkg/rest/operation
// [config]: https://pkg.go.dev/github.com/matzehuels/opencga/pkg/config
// [session]: https://pkg.go.dev/github.com/matzehuels/opencga/pkg/session
// [errors]: https://pkg.go.dev/github.com/matzehuels/opencga/pkg/errors
// [errors.Code]: https://pkg.go.dev/github.com/matzehuels/opencga/pkg/errors#Code
// [observability]: https://pkg.go.dev/github.com/matzehuels/opencga/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/opencga/pkg/buildinfo
package pkg
