package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/weighworks/weighbridge-parser/internal/common"
	"github.com/weighworks/weighbridge-parser/internal/entity"
	"github.com/weighworks/weighbridge-parser/internal/extract"
	"github.com/weighworks/weighbridge-parser/internal/normalize"
	"github.com/weighworks/weighbridge-parser/internal/preprocess"
	"github.com/weighworks/weighbridge-parser/internal/validate"
)

// PayloadReader supplies raw OCR documents per input path.
type PayloadReader interface {
	ReadPayload(ctx context.Context, path string) ([]byte, error)
}

// Processor coordinates the per-item stages: clean, extract, normalize,
// validate, construct. Every stage degrades gracefully except payload
// decoding, whose FormatError is fatal for that single item only.
type Processor struct {
	logger     *slog.Logger
	cleaner    *preprocess.Cleaner
	extractor  *extract.Extractor
	normalizer *normalize.Normalizer
	validator  *validate.Validator
	clock      func() time.Time
}

func NewProcessor(
	logger *slog.Logger,
	cleaner *preprocess.Cleaner,
	extractor *extract.Extractor,
	normalizer *normalize.Normalizer,
	validator *validate.Validator,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cleaner == nil {
		cleaner = preprocess.NewCleaner(logger)
	}
	if extractor == nil {
		extractor = extract.NewExtractor(nil, logger)
	}
	if normalizer == nil {
		normalizer = normalize.NewNormalizer(logger)
	}
	if validator == nil {
		validator = validate.NewValidator(common.DefaultValidationConfig(), logger)
	}
	return &Processor{
		logger:     logger,
		cleaner:    cleaner,
		extractor:  extractor,
		normalizer: normalizer,
		validator:  validator,
		clock:      time.Now,
	}
}

// ProcessPayload runs the full pipeline over one raw OCR document and
// returns its report. Never returns an error: an unrecognized payload shape
// produces a report carrying the failure.
func (p *Processor) ProcessPayload(name string, raw []byte) entity.ItemReport {
	report := entity.ItemReport{
		ID:          uuid.New(),
		FileName:    name,
		ProcessedAt: p.clock(),
	}

	text, confidence, err := p.cleaner.Clean(raw)
	if err != nil {
		var formatErr *common.FormatError
		if !errors.As(err, &formatErr) {
			err = common.WrapError(err, "clean payload")
		}
		p.logger.Error("pipeline.clean.failed", "file", name, "err", err)
		report.Error = err.Error()
		report.Validation = entity.ValidationReport{
			IsValid:  false,
			Warnings: []string{},
			Errors:   []string{err.Error()},
		}
		return report
	}
	text = preprocess.CompactLabels(text)

	extracted := p.extractor.Extract(text)
	normalized := p.normalizer.Normalize(extracted)
	result := p.validator.Validate(normalized)
	report.Validation = result.ToReport()

	if confidence == nil {
		h := preprocess.HeuristicConfidence(text)
		confidence = &h
	}

	record, err := entity.NewWeighbridgeRecord(normalized, confidence)
	if err != nil {
		// Keep the normalized mapping as the output body so nothing is lost.
		p.logger.Error("pipeline.record.failed", "file", name, "err", err)
		report.Data = normalized.Body(confidence)
	} else {
		report.Data = record.Body()
	}

	status := "ok"
	if !result.IsValid {
		status = "invalid"
	} else if len(result.Warnings) > 0 {
		status = "warned"
	}
	p.logger.Info("pipeline.item.done",
		"file", name,
		"status", status,
		"warnings", len(result.Warnings),
		"errors", len(result.Errors),
		"completeness", p.validator.CompletenessScore(normalized),
	)
	return report
}

// ProcessBatch processes each path independently; a failure on one item
// never aborts the rest.
func (p *Processor) ProcessBatch(ctx context.Context, reader PayloadReader, paths []string) ([]entity.ItemReport, entity.BatchSummary) {
	p.logger.Info("pipeline.batch.start", "items", len(paths))

	reports := make([]entity.ItemReport, 0, len(paths))
	var summary entity.BatchSummary

	for _, path := range paths {
		raw, err := reader.ReadPayload(ctx, path)
		if err != nil {
			p.logger.Error("pipeline.read.failed", "file", path, "err", err)
			reports = append(reports, entity.ItemReport{
				ID:          uuid.New(),
				FileName:    path,
				ProcessedAt: p.clock(),
				Error:       err.Error(),
				Validation: entity.ValidationReport{
					IsValid:  false,
					Warnings: []string{},
					Errors:   []string{err.Error()},
				},
			})
			summary.Total++
			summary.Failed++
			summary.Unreadable++
			continue
		}

		report := p.ProcessPayload(path, raw)
		reports = append(reports, report)

		summary.Total++
		switch {
		case report.Error != "":
			summary.Failed++
			summary.Unreadable++
		case !report.Validation.IsValid:
			summary.Failed++
		case len(report.Validation.Warnings) > 0:
			summary.Warned++
		default:
			summary.Valid++
		}
	}

	p.logger.Info("pipeline.batch.done",
		"total", summary.Total,
		"valid", summary.Valid,
		"warned", summary.Warned,
		"failed", summary.Failed,
		"unreadable", summary.Unreadable,
	)
	return reports, summary
}
