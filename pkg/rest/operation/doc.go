// Package operation provides bindings for the OpenCGA variant storage
// operation webservices.
//
// # Overview
//
// Variant operations are long-running server jobs: aggregation, annotation,
// sample and family indexing, score loading and secondary indexing. Each
// method of [Client] maps one-to-one onto an endpoint under
// /{apiVersion}/operation and forwards its payload and options unchanged.
// The server answers with a job description which is returned undecoded.
//
// # Usage
//
//	rc, err := rest.NewClient(rest.Config{
//	    Host:  "https://ws.opencb.org/opencga-prod",
//	    Token: token,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ops := operation.NewClient(rc)
//
//	resp, err := ops.AggregateVariant(ctx,
//	    operation.VariantAggregateParams{Overwrite: true},
//	    operation.JobOptions{ID: "aggregate-chr1"}.Options().Merge(rest.Options{
//	        operation.ParamStudy: "user@project:study",
//	    }))
//
// # Payloads
//
// POST methods accept any JSON-encodable value as data: a typed params
// struct from this package, a map, a json.RawMessage or nil. DELETE methods
// take only options.
//
// # Routing table
//
// [Routes] describes every endpoint as data. [Client.Invoke] dispatches a
// call by route name, which is how the command line front end drives the
// bindings.
package operation
