package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/recalibr/recalibr/backend/internal/adapters/providers/vin"
	"github.com/recalibr/recalibr/backend/internal/adapters/refdata"
	"github.com/recalibr/recalibr/backend/internal/application/services"
	"github.com/recalibr/recalibr/backend/internal/domain/entities"
	"github.com/recalibr/recalibr/backend/pkg/config"
	"github.com/recalibr/recalibr/backend/pkg/utils"
)

// Command-line scrub: one estimate in, one reconciliation result out as
// JSON on stdout. Suitable for piping into jq or batch shell scripts.
func main() {
	estimatePath := flag.String("estimate", "", "path to the estimate text file (required)")
	secondaryPath := flag.String("secondary", "", "path to the secondary calibration report text file")
	vinFlag := flag.String("vin", "", "vehicle VIN")
	brand := flag.String("brand", "", "vehicle brand, overrides the VIN decode")
	year := flag.Int("year", 0, "vehicle model year, overrides the VIN decode")
	description := flag.String("description", "", "free-text vehicle description")
	flag.Parse()

	if *estimatePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	estimateText, err := os.ReadFile(*estimatePath)
	if err != nil {
		log.Fatalf("Failed to read estimate file: %v", err)
	}

	var secondaryText []byte
	if *secondaryPath != "" {
		secondaryText, err = os.ReadFile(*secondaryPath)
		if err != nil {
			log.Fatalf("Failed to read secondary report file: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	refProvider, err := refdata.NewFileProvider(refdata.Paths{
		Triggers:          cfg.RefData.TriggersPath,
		SystemAliases:     cfg.RefData.SystemAliasesPath,
		IntroductionYears: cfg.RefData.IntroductionYearsPath,
		CalibrationTypes:  cfg.RefData.CalibrationTypesPath,
	})
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

	result := scrubService.Scrub(entities.ScrubRequest{
		EstimateText:        string(estimateText),
		VIN:                 *vinFlag,
		Brand:               *brand,
		Year:                *year,
		SecondaryReportText: string(secondaryText),
		VehicleDescription:  *description,
	})

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))

	if result.Error != "" {
		os.Exit(1)
	}
}
