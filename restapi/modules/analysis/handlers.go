// Package analysis implements the REST API handlers for runtime analysis operations.
package analysis

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jdkaudit/jdkaudit-backend/analyzer"
	"github.com/jdkaudit/jdkaudit-backend/database"
	"github.com/jdkaudit/jdkaudit-backend/model"
	"github.com/jdkaudit/jdkaudit-backend/util"
)

// AnalyzeRequest is the POST /analyze request body. Raw is the only
// required field and carries the untrusted version string verbatim.
type AnalyzeRequest struct {
	Raw        string `json:"raw"`
	AsOf       string `json:"as_of,omitempty"`
	VendorHint string `json:"vendor_hint,omitempty"`
}

// PostAnalyze parses the submitted runtime string, evaluates license and
// lifecycle policy, persists the verdict and returns it.
func PostAnalyze(db database.DBConnection, svc *analyzer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AnalyzeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if util.IsEmpty(req.Raw) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "raw is required",
			})
		}

		asOf := time.Now().UTC()
		if util.IsNotEmpty(req.AsOf) {
			parsed, err := time.Parse(time.RFC3339, req.AsOf)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "as_of must be RFC3339",
				})
			}
			asOf = parsed.UTC()
		}

		verdict, err := svc.Analyze(req.Raw, asOf, req.VendorHint)
		if err != nil {
			var failure *model.ParseFailure
			if errors.As(err, &failure) {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
					"error":  "Unrecognized runtime version string",
					"reason": failure.Reason,
					"input":  failure.Input,
					"detail": failure.Detail,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx := context.Background()
		key, err := database.SaveAnalysis(ctx, db, verdict)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save analysis: " + err.Error(),
			})
		}
		verdict.Key = key

		return c.Status(fiber.StatusCreated).JSON(verdict)
	}
}

// GetAnalyses lists stored verdicts, optionally filtered by vendor,
// risk category, license flag or runtime PURL query parameters.
func GetAnalyses(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := database.AnalysisFilter{
			Vendor:       c.Query("vendor"),
			RiskCategory: c.Query("risk"),
			LicenseFlag:  c.Query("license"),
			Limit:        c.QueryInt("limit"),
		}

		// Stored runtime PURLs carry no qualifiers, so the caller's
		// filter is normalized to the same shape before matching.
		if purl := c.Query("purl"); util.IsNotEmpty(purl) {
			cleaned, err := util.CleanPURL(purl)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "purl must be a valid package URL",
				})
			}
			filter.RuntimePURL = cleaned
		}

		ctx := context.Background()
		results, err := database.FindAnalyses(ctx, db, filter)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to query analyses: " + err.Error(),
			})
		}

		if results == nil {
			results = []model.Verdict{}
		}

		return c.JSON(fiber.Map{
			"count":    len(results),
			"analyses": results,
		})
	}
}

// RuntimeSummary is one GET /runtimes row: all stored verdicts for a
// vendor and product, collapsed across versions.
type RuntimeSummary struct {
	BasePURL string `json:"base_purl"`
	Count    int    `json:"count"`
}

func groupByBasePURL(counts []database.RuntimeCount) []RuntimeSummary {
	totals := make(map[string]int)
	for _, rc := range counts {
		base, err := util.BasePURL(rc.RuntimePURL)
		if err != nil {
			base = rc.RuntimePURL
		}
		totals[base] += rc.Count
	}

	summaries := make([]RuntimeSummary, 0, len(totals))
	for base, count := range totals {
		summaries = append(summaries, RuntimeSummary{BasePURL: base, Count: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		return summaries[i].BasePURL < summaries[j].BasePURL
	})
	return summaries
}

// GetRuntimeSummary reports how many stored verdicts exist per runtime,
// grouped by version-free base PURL.
func GetRuntimeSummary(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()
		counts, err := database.CountAnalysesByRuntime(ctx, db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to summarize runtimes: " + err.Error(),
			})
		}

		summaries := groupByBasePURL(counts)
		return c.JSON(fiber.Map{
			"count":    len(summaries),
			"runtimes": summaries,
		})
	}
}

// GetLifecycle returns the lifecycle reference table the classifier runs on.
func GetLifecycle(svc *analyzer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records := svc.LifecycleRecords()
		return c.JSON(fiber.Map{
			"count":   len(records),
			"records": records,
		})
	}
}
