// Package analyzer sequences the core pipeline: parse, then license
// evaluation and risk classification, assembled into a single Verdict.
// It is the only component that calls the others.
package analyzer

import (
	"time"

	"github.com/jdkaudit/jdkaudit-backend/config"
	"github.com/jdkaudit/jdkaudit-backend/model"
	"github.com/jdkaudit/jdkaudit-backend/parser"
	"github.com/jdkaudit/jdkaudit-backend/policy"
	"github.com/jdkaudit/jdkaudit-backend/risk"
	"github.com/jdkaudit/jdkaudit-backend/util"
)

// Service wires the parser, rule engine, and classifier built from one
// policy bundle. Construction performs the startup integrity check;
// a Service that exists is safe to serve with. All methods are pure and
// safe for fully parallel use across unrelated inputs.
type Service struct {
	parser     *parser.Parser
	engine     *policy.Engine
	classifier *risk.Classifier
}

// NewService compiles the bundle and validates the rule set. A
// *policy.ConfigError here is fatal by contract: the caller must refuse
// to serve rather than run with an incomplete license rule set.
func NewService(bundle *config.Bundle) (*Service, error) {
	rules, err := bundle.Rules()
	if err != nil {
		return nil, err
	}
	engine, err := policy.NewEngine(rules)
	if err != nil {
		return nil, err
	}
	records, err := bundle.LifecycleRecords()
	if err != nil {
		return nil, err
	}
	return &Service{
		parser:     parser.New(bundle.Signatures()),
		engine:     engine,
		classifier: risk.NewClassifier(records, bundle.WarningWindow()),
	}, nil
}

// Analyze runs the full pipeline for one raw version string. A parse
// failure short-circuits: the *model.ParseFailure is returned untouched
// and neither the rule engine nor the classifier runs. On success the
// verdict is complete - license, risk, and confidence are all present.
func (s *Service) Analyze(raw string, asOf time.Time, vendorHint string) (*model.Verdict, error) {
	id, err := s.parser.Parse(raw, vendorHint)
	if err != nil {
		return nil, err
	}

	license := s.engine.Evaluate(*id, asOf)
	assessment := s.classifier.Classify(*id, asOf)

	confidence := model.ConfidenceHigh
	if id.Vendor.ID == model.VendorUnknown || assessment.ReducedConfidence {
		confidence = model.ConfidenceReduced
	}

	return &model.Verdict{
		ObjType:     "Analysis",
		Identity:    *id,
		License:     license,
		Risk:        assessment,
		Confidence:  confidence,
		RuntimePURL: runtimePURL(*id),
		AnalyzedAt:  asOf,
	}, nil
}

// LifecycleRecords exposes the loaded reference table for the
// reference-data read surfaces.
func (s *Service) LifecycleRecords() []model.LifecycleRecord {
	return s.classifier.Records()
}

// runtimePURL renders a generic-type package URL for the identified
// runtime, e.g. pkg:generic/temurin/jdk@21.0.4+7. An unknown vendor
// yields a namespace-less PURL.
func runtimePURL(id model.VersionIdentity) string {
	namespace := ""
	if id.Vendor.ID != model.VendorUnknown {
		namespace = string(id.Vendor.ID)
	}
	return util.BuildRuntimePURL(namespace, id.String())
}
