package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/services/integration"
	"github.com/jeandelest/Queen-Back-Office/internal/services/sample"
)

func newIntegrateContextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "integrate-context <context.zip>",
		Short: "Integrate a campaign context archive and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := bootstrap(cmd.Context())
			if err != nil {
				return &exitError{code: sample.KOTechnicalError, err: err}
			}
			defer env.Close()

			svc := integration.NewService(integration.NewGormTransactor(env.db), env.validator)
			result, events, err := svc.IntegrateContext(cmd.Context(), args[0])
			if err != nil {
				code := sample.KOTechnicalError
				if errors.Is(err, integration.ErrArchiveRead) {
					code = sample.KOFunctionalError
				}
				return &exitError{code: code, err: err}
			}

			if env.invalidator != nil {
				if err := env.invalidator.Apply(cmd.Context(), events); err != nil {
					logrus.WithError(err).Warn("Cache invalidation failed after context integration")
				}
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return &exitError{code: sample.KOTechnicalError, err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if failed := countFailures(result); failed > 0 {
				return &exitError{
					code: sample.OKFunctionalWarning,
					err:  fmt.Errorf("context integrated with %d errors", failed),
				}
			}
			return nil
		},
	}
}

func countFailures(result *models.IntegrationResult) int {
	failed := 0
	if result.Campaign != nil && result.Campaign.Status == models.IntegrationError {
		failed++
	}
	for _, units := range [][]models.IntegrationResultUnit{result.Nomenclatures, result.QuestionnaireModels} {
		for _, unit := range units {
			if unit.Status == models.IntegrationError {
				failed++
			}
		}
	}
	return failed
}
