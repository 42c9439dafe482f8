package operation

import (
	"context"
	"net/http"
	"slices"
	"strings"

	apierrors "github.com/matzehuels/opencga/pkg/errors"
	"github.com/matzehuels/opencga/pkg/rest"
)

type (
	postFunc   func(*Client, context.Context, any, rest.Options) (*rest.Response, error)
	deleteFunc func(*Client, context.Context, rest.Options) (*rest.Response, error)
)

// Route describes one operation endpoint.
type Route struct {
	Name        string   // Command style name, e.g. "aggregate-variant"
	Method      string   // Go method on Client, e.g. "AggregateVariant"
	Verb        string   // http.MethodPost or http.MethodDelete
	Resource    string   // e.g. "aggregate"
	Subcategory string   // e.g. "variant/family"
	Summary     string   // One line description
	Options     []string // Documented option names
	Body        string   // Payload description, empty for DELETE routes

	post postFunc
	del  deleteFunc
}

// Request returns the path components of the route.
func (r Route) Request() rest.Request {
	return rest.Request{Category: category, Resource: r.Resource, Subcategory: r.Subcategory}
}

// Path returns the documented endpoint path.
func (r Route) Path() string {
	return "/{apiVersion}/" + r.Request().Path()
}

// HasBody reports whether the route accepts a payload.
func (r Route) HasBody() bool {
	return r.Verb == http.MethodPost
}

var jobOptions = []string{ParamJobID, ParamJobDescription, ParamJobDependsOn, ParamJobTags}

func withJob(extra ...string) []string {
	return append(slices.Clone(jobOptions), extra...)
}

var routes = []Route{
	{
		Name:     "aggregate-variant", Method: "AggregateVariant", Verb: http.MethodPost,
		Resource: "aggregate", Subcategory: "variant",
		Summary:  "Find variants where not all the samples are present, and fill the empty values, excluding HOM-REF (0/0) values",
		Options:  withJob(ParamStudy),
		Body:     "Variant aggregate params",
		post:     (*Client).AggregateVariant,
	},
	{
		Name:     "delete-variant-annotation", Method: "DeleteVariantAnnotation", Verb: http.MethodDelete,
		Resource: "delete", Subcategory: "variant/annotation",
		Summary:  "Delete a saved copy of variant annotation",
		Options:  withJob(ParamProject, ParamAnnotationID),
		del:      (*Client).DeleteVariantAnnotation,
	},
	{
		Name:     "index-variant-annotation", Method: "IndexVariantAnnotation", Verb: http.MethodPost,
		Resource: "index", Subcategory: "variant/annotation",
		Summary:  "Create and load variant annotations into the database",
		Options:  withJob(ParamProject, ParamStudy),
		Body:     "Variant annotation index params",
		post:     (*Client).IndexVariantAnnotation,
	},
	{
		Name:     "save-variant-annotation", Method: "SaveVariantAnnotation", Verb: http.MethodPost,
		Resource: "save", Subcategory: "variant/annotation",
		Summary:  "Save a copy of the current variant annotation at the database",
		Options:  withJob(ParamProject),
		Body:     "Variant annotation save params",
		post:     (*Client).SaveVariantAnnotation,
	},
	{
		Name:     "configure-variant", Method: "ConfigureVariant", Verb: http.MethodPost,
		Resource: "configure", Subcategory: "variant",
		Summary:  "Update the variant storage configuration of a project",
		Options:  []string{ParamProject},
		Body:     "Configuration params to update",
		post:     (*Client).ConfigureVariant,
	},
	{
		Name:     "aggregate-variant-family", Method: "AggregateVariantFamily", Verb: http.MethodPost,
		Resource: "aggregate", Subcategory: "variant/family",
		Summary:  "Find variants where not all the samples are present, and fill the empty values",
		Options:  withJob(ParamStudy),
		Body:     "Variant aggregate family params",
		post:     (*Client).AggregateVariantFamily,
	},
	{
		Name:     "index-family-genotype", Method: "IndexFamilyGenotype", Verb: http.MethodPost,
		Resource: "index", Subcategory: "variant/family/genotype",
		Summary:  "Build the family index",
		Options:  withJob(ParamStudy),
		Body:     "Variant family index params",
		post:     (*Client).IndexFamilyGenotype,
	},
	{
		Name:     "run-variant-julie", Method: "RunVariantJulie", Verb: http.MethodPost,
		Resource: "run", Subcategory: "variant/julie",
		Summary:  "Transform VariantStats into PopulationFrequency values and update the VariantAnnotation",
		Options:  withJob(ParamProject),
		Body:     "Julie tool params, cohorts given as {study}:{cohort} (required)",
		post:     (*Client).RunVariantJulie,
	},
	{
		Name:     "index-sample-genotype", Method: "IndexSampleGenotype", Verb: http.MethodPost,
		Resource: "index", Subcategory: "variant/sample/genotype",
		Summary:  "Build and annotate the sample index",
		Options:  withJob(ParamStudy),
		Body:     "Variant sample index params",
		post:     (*Client).IndexSampleGenotype,
	},
	{
		Name:     "delete-variant-score", Method: "DeleteVariantScore", Verb: http.MethodDelete,
		Resource: "delete", Subcategory: "variant/score",
		Summary:  "Remove a variant score in the database",
		Options:  withJob(ParamStudy, ParamName, ParamResume, ParamForce),
		del:      (*Client).DeleteVariantScore,
	},
	{
		Name:     "index-variant-score", Method: "IndexVariantScore", Verb: http.MethodPost,
		Resource: "index", Subcategory: "variant/score",
		Summary:  "Index a variant score in the database",
		Options:  withJob(ParamStudy),
		Body:     "Variant score index params",
		post:     (*Client).IndexVariantScore,
	},
	{
		Name:     "secondary-index-variant", Method: "SecondaryIndexVariant", Verb: http.MethodPost,
		Resource: "secondary_index", Subcategory: "variant",
		Summary:  "Create a secondary index using a search engine, adding sample data when samples are provided",
		Options:  withJob(ParamProject, ParamStudy),
		Body:     "Variant secondary index params",
		post:     (*Client).SecondaryIndexVariant,
	},
	{
		Name:     "delete-variant-secondary-index", Method: "DeleteVariantSecondaryIndex", Verb: http.MethodDelete,
		Resource: "delete", Subcategory: "variant/secondaryIndex",
		Summary:  "Remove a secondary index from the search engine for a specific set of samples",
		Options:  withJob(ParamStudy, ParamSamples),
		del:      (*Client).DeleteVariantSecondaryIndex,
	},
}

// Routes returns the routing table in declaration order.
func Routes() []Route {
	return slices.Clone(routes)
}

// Lookup finds a route by name or Go method name, ignoring case.
func Lookup(name string) (Route, bool) {
	for _, r := range routes {
		if strings.EqualFold(r.Name, name) || strings.EqualFold(r.Method, name) {
			return r, true
		}
	}
	return Route{}, false
}

// Invoke calls the route with the given name. DELETE routes ignore data.
func (c *Client) Invoke(ctx context.Context, name string, data any, opts rest.Options) (*rest.Response, error) {
	r, ok := Lookup(name)
	if !ok {
		return nil, apierrors.New(apierrors.ErrCodeUnknownRoute, "unknown operation %q", name)
	}
	if r.del != nil {
		return r.del(c, ctx, opts)
	}
	return r.post(c, ctx, data, opts)
}
