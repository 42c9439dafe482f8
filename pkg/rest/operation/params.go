package operation

import (
	"strings"

	"github.com/matzehuels/opencga/pkg/rest"
)

// Query parameter names understood by the operation endpoints.
const (
	ParamJobID          = "job_id"
	ParamJobDescription = "job_description"
	ParamJobDependsOn   = "job_depends_on"
	ParamJobTags        = "job_tags"
	ParamStudy          = "study"
	ParamProject        = "project"
	ParamAnnotationID   = "annotation_id"
	ParamName           = "name"
	ParamResume         = "resume"
	ParamForce          = "force"
	ParamSamples        = "samples"
)

// JobOptions are the options accepted by every job-submitting endpoint.
type JobOptions struct {
	ID          string   // Unique within the study, autogenerated when empty
	Description string
	DependsOn   []string // IDs of existing jobs this job waits for
	Tags        []string
}

// Options renders the non-empty fields as request options.
func (j JobOptions) Options() rest.Options {
	opts := rest.Options{}
	if j.ID != "" {
		opts[ParamJobID] = j.ID
	}
	if j.Description != "" {
		opts[ParamJobDescription] = j.Description
	}
	if len(j.DependsOn) > 0 {
		opts[ParamJobDependsOn] = strings.Join(j.DependsOn, ",")
	}
	if len(j.Tags) > 0 {
		opts[ParamJobTags] = strings.Join(j.Tags, ",")
	}
	return opts
}

// VariantAggregateParams is the body of AggregateVariant.
type VariantAggregateParams struct {
	Overwrite bool `json:"overwrite,omitempty"`
	Resume    bool `json:"resume,omitempty"`
}

// VariantAnnotationIndexParams is the body of IndexVariantAnnotation.
type VariantAnnotationIndexParams struct {
	Outdir               string `json:"outdir,omitempty"`
	OutputFileName       string `json:"outputFileName,omitempty"`
	Annotator            string `json:"annotator,omitempty"`
	OverwriteAnnotations bool   `json:"overwriteAnnotations,omitempty"`
	Region               string `json:"region,omitempty"`
	Create               bool   `json:"create,omitempty"`
	Load                 string `json:"load,omitempty"`
	CustomName           string `json:"customName,omitempty"`
}

// VariantAnnotationSaveParams is the body of SaveVariantAnnotation.
type VariantAnnotationSaveParams struct {
	Annotation string `json:"annotation,omitempty"`
}

// VariantAggregateFamilyParams is the body of AggregateVariantFamily.
type VariantAggregateFamilyParams struct {
	Samples []string `json:"samples,omitempty"`
	Resume  bool     `json:"resume,omitempty"`
}

// VariantFamilyIndexParams is the body of IndexFamilyGenotype.
type VariantFamilyIndexParams struct {
	Family                 []string `json:"family,omitempty"`
	Overwrite              bool     `json:"overwrite,omitempty"`
	SkipIncompleteFamilies bool     `json:"skipIncompleteFamilies,omitempty"`
}

// JulieParams is the body of RunVariantJulie.
// Cohorts are given as {study}:{cohort} and may span several studies.
type JulieParams struct {
	Cohorts   []string `json:"cohorts"`
	Region    string   `json:"region,omitempty"`
	Overwrite bool     `json:"overwrite,omitempty"`
}

// VariantSampleIndexParams is the body of IndexSampleGenotype.
type VariantSampleIndexParams struct {
	Sample     []string `json:"sample,omitempty"`
	BuildIndex bool     `json:"buildIndex,omitempty"`
	Annotate   bool     `json:"annotate,omitempty"`
}

// VariantScoreIndexParams is the body of IndexVariantScore.
//
// InputColumns gives the zero-based column positions in the input file,
// e.g. "CHROM=0,POS=1,REF=3,ALT=4,SCORE=5,PVALUE=6" or "VAR=0,SCORE=1".
type VariantScoreIndexParams struct {
	ScoreName    string `json:"scoreName,omitempty"`
	Cohort1      string `json:"cohort1,omitempty"` // "ALL" when computed over every sample
	Cohort2      string `json:"cohort2,omitempty"`
	Input        string `json:"input,omitempty"`
	InputColumns string `json:"inputColumns,omitempty"`
	Resume       bool   `json:"resume,omitempty"`
}

// VariantSecondaryIndexParams is the body of SecondaryIndexVariant.
type VariantSecondaryIndexParams struct {
	Region    string   `json:"region,omitempty"`
	Sample    []string `json:"sample,omitempty"`
	Overwrite bool     `json:"overwrite,omitempty"`
}
