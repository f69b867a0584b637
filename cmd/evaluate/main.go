package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/recalibr/recalibr/backend/internal/adapters/providers/vin"
	"github.com/recalibr/recalibr/backend/internal/adapters/refdata"
	"github.com/recalibr/recalibr/backend/internal/application/services"
	"github.com/recalibr/recalibr/backend/internal/evaluation"
	"github.com/recalibr/recalibr/backend/pkg/config"
	"github.com/recalibr/recalibr/backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Resolve reference data paths whether run from the repo root or the
	// backend directory.
	paths := refdata.Paths{
		Triggers:          resolvePath(cfg.RefData.TriggersPath),
		SystemAliases:     resolvePath(cfg.RefData.SystemAliasesPath),
		IntroductionYears: resolvePath(cfg.RefData.IntroductionYearsPath),
		CalibrationTypes:  resolvePath(cfg.RefData.CalibrationTypesPath),
	}

	refProvider, err := refdata.NewFileProvider(paths)
	if err != nil {
		log.Fatalf("Failed to load reference data: %v", err)
	}

	normalizer := utils.NewSystemNormalizer(refProvider.AliasSets())
	typeService := services.NewCalibrationTypeService(refProvider)
	scrubService := services.NewScrubService(
		services.NewEstimateParserService(),
		services.NewEquipmentService(refProvider, normalizer),
		services.NewTriggerService(refProvider, normalizer, typeService),
		services.NewReconciliationService(normalizer, typeService),
		normalizer,
		vin.NewDecoder(),
	)

	goldenPath := resolvePath(cfg.RefData.GoldenEstimatesPath)
	estimates, err := evaluation.LoadGoldenEstimates(goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden estimates: %v", err)
	}
	if err := evaluation.ValidateGoldenEstimates(estimates); err != nil {
		log.Fatalf("Invalid golden estimates: %v", err)
	}

	runner := evaluation.NewRunner(scrubService)
	summary := runner.Run(estimates)

	// Output results as JSON
	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}

func resolvePath(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if _, err := os.Stat("backend/" + path); err == nil {
		return "backend/" + path
	}
	return path
}
