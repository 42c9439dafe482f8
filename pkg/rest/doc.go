// Package rest provides the shared HTTP client for the OpenCGA REST API.
//
// # Overview
//
// OpenCGA exposes its webservices under
//
//	{host}/webservices/rest/{version}/{category}[/{id}][/{subcategory}][/{id2}]/{resource}
//
// Every endpoint binding (see [operation]) is a thin method that names the
// path components of its endpoint and hands its payload and options to
// [Client.Post], [Client.Delete] or [Client.Get]. This package owns
// everything those bindings share: URL construction, query encoding,
// authentication headers and mapping of HTTP failures to coded errors.
//
// # Options
//
// [Options] are free-form query parameters. Keys may use the snake_case
// names of the Python client ("job_id", "job_depends_on") or the server's
// camelCase names ("jobId"); both are sent as camelCase. List values are
// joined with commas.
//
// # Responses
//
// A [Response] holds the raw JSON body exactly as the server sent it.
// Decoding it is left to the caller.
//
// # Errors
//
// Non-2xx responses are returned as [errors.Error] values whose code
// reflects the status class and whose cause is a [StatusError] carrying the
// body. Transport failures map to NETWORK_ERROR or TIMEOUT. Requests are
// never retried.
//
// [operation]: github.com/matzehuels/opencga/pkg/rest/operation
// [errors.Error]: github.com/matzehuels/opencga/pkg/errors.Error
package rest
