package operation

import (
	"context"

	"github.com/matzehuels/opencga/pkg/rest"
)

const category = "operation"

// Client provides access to the 'Operations - Variant Storage' webservices.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*rest.Client
}

// NewClient wraps a configured REST client.
func NewClient(c *rest.Client) *Client {
	return &Client{Client: c}
}

// AggregateVariant finds variants where not all the samples are present and
// fills the empty values, excluding HOM-REF (0/0) values.
//
// PATH: /{apiVersion}/operation/variant/aggregate
//
// Options: job_id, job_description, job_depends_on, job_tags, study.
// Body: [VariantAggregateParams].
func (c *Client) AggregateVariant(ctx context.Context, data any, opts rest.Options) (*rest.Response, error) {
	return c.Post(ctx, rest.Request{Category: category, Resource: "aggregate", Subcategory: "variant"}, data, opts)
}

// DeleteVariantAnnotation deletes a saved copy of variant annotation.
//
// PATH: /{apiVersion}/operation/variant/annotation/delete
//
// Options: job_id, job_description, job_depends_on, job_tags, project,
// annotation_id.
func (c *Client) DeleteVariantAnnotation(ctx context.Context, opts rest.Options) (*rest.Response, error) {
	return c.Delete(ctx, rest.Request{Category: category, Resource: "delete", Subcategory: "variant/annotation"}, opts)
}

// IndexVariantAnnotation creates and loads variant annotations into the
// database.
//
// PATH: /{apiVersion}/operation/variant/annotation/index
//
// Options: job_id, job_description, job_depends_on, job_tags, project, study.
// Body: [VariantAnnotationIndexParams].
func (c *Client) IndexVariantAnnotation(ctx context.Context, data any, opts rest.Options) (*rest.Response, error) {
	return c.Post(ctx, rest.Request{Category: category, Resource: "index", Subcategory: "variant/annotation"}, data, opts)
}

// SaveVariantAnnotation saves a copy of the current variant annotation at
// the database.
//
// PATH: /{apiVersion}/operation/variant/annotation/save
//
// Options: job_id, job_description, job_depends_on, job_tags, project.
// Body: [VariantAnnotationSaveParams].
func (c *Client) SaveVariantAnnotation(ctx context.Context, data any, opts rest.Options) (*rest.Response, error) {
	return c.Post(ctx, rest.Request{Category: category, Resource: "save", Subcategory: "variant/annotation"}, data, opts)
}

// ConfigureVariant updates the variant storage configuration of a project.
//
// PATH: /{apiVersion}/operation/variant/configure
//
// Options: project.
// Body: free-form map of configuration params to update.
func (c *Client) ConfigureVariant(ctx context.Context, data any, opts rest.Options) (*rest.Response, error) {
	return c.Post(ctx, rest.Request{Category: category, Resource: "configure", Subcategory: "variant"}, data, opts)
}

// AggregateVariantFamily finds variants where not all the samples of a
// family are present and fills the empty values.
//
// PATH: /{apiVersion}/operation/variant/family/aggregate
//
// Options: job_id, job_description, job_depends_on, job_tags, study.
// Body: [VariantAggregateFamilyParams].
func (c *Client) AggregateVariantFamily(ctx context.Context, data any, opts rest.Options) (*rest.Response, error) {
	return c.Post(ctx, rest.Request{Category: category, Resource: "aggregate", Subcategory: "variant/family"}, data, opts)
}

// IndexFamilyGenotype builds the family index.
//
// PATH: /{apiVersion}/operation/variant/family/genotype/index
//
// Options: job_id, job_description, job_depends_on, job_tags, study.
// Body: [VariantFamilyIndexParams].
func (c *Client) IndexFamilyGenotype(ctx context.Context, data any, opts rest.Options) (*rest.Response, error) {
	return c.Post(ctx, rest.Request{Category: category, Resource: "index", Subcategory: "variant/family/genotype"}, data, opts)
}

// RunVariantJulie transforms VariantStats into PopulationFrequency values
// and updates the VariantAnnotation.
//
// PATH: /{apiVersion}/operation/variant/julie/run
//
// Options: job_id, job_description, job_depends_on, job_tags, project.
// Body: [JulieParams] (required).
func (c *Client) RunVariantJulie(ctx context.Context, data any, opts rest.Options) (*rest.Response, error) {
	return c.Post(ctx, rest.Request{Category: category, Resource: "run", Subcategory: "variant/julie"}, data, opts)
}

// IndexSampleGenotype builds and annotates the sample index.
//
// PATH: /{apiVersion}/operation/variant/sample/genotype/index
//
// Options: job_id, job_description, job_depends_on, job_tags, study.
// Body: [VariantSampleIndexParams].
func (c *Client) IndexSampleGenotype(ctx context.Context, data any, opts rest.Options) (*rest.Response, error) {
	return c.Post(ctx, rest.Request{Category: category, Resource: "index", Subcategory: "variant/sample/genotype"}, data, opts)
}

// DeleteVariantScore removes a variant score from the database.
//
// PATH: /{apiVersion}/operation/variant/score/delete
//
// Options: job_id, job_description, job_depends_on, job_tags, study, name,
// resume, force.
func (c *Client) DeleteVariantScore(ctx context.Context, opts rest.Options) (*rest.Response, error) {
	return c.Delete(ctx, rest.Request{Category: category, Resource: "delete", Subcategory: "variant/score"}, opts)
}

// IndexVariantScore indexes a variant score in the database.
//
// PATH: /{apiVersion}/operation/variant/score/index
//
// Options: job_id, job_description, job_depends_on, job_tags, study.
// Body: [VariantScoreIndexParams].
func (c *Client) IndexVariantScore(ctx context.Context, data any, opts rest.Options) (*rest.Response, error) {
	return c.Post(ctx, rest.Request{Category: category, Resource: "index", Subcategory: "variant/score"}, data, opts)
}

// SecondaryIndexVariant creates a secondary index using a search engine.
// If samples are provided, sample data is added to the secondary index.
//
// PATH: /{apiVersion}/operation/variant/secondaryIndex
//
// Options: job_id, job_description, job_depends_on, job_tags, project, study.
// Body: [VariantSecondaryIndexParams].
func (c *Client) SecondaryIndexVariant(ctx context.Context, data any, opts rest.Options) (*rest.Response, error) {
	return c.Post(ctx, rest.Request{Category: category, Resource: "secondary_index", Subcategory: "variant"}, data, opts)
}

// DeleteVariantSecondaryIndex removes a secondary index from the search
// engine for a specific set of samples.
//
// PATH: /{apiVersion}/operation/variant/secondaryIndex/delete
//
// Options: job_id, job_description, job_depends_on, job_tags, study, samples.
// The samples option must list every sample in the secondary index.
func (c *Client) DeleteVariantSecondaryIndex(ctx context.Context, opts rest.Options) (*rest.Response, error) {
	return c.Delete(ctx, rest.Request{Category: category, Resource: "delete", Subcategory: "variant/secondaryIndex"}, opts)
}
