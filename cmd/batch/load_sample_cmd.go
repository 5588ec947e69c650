package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jeandelest/Queen-Back-Office/internal/database/repository"
	"github.com/jeandelest/Queen-Back-Office/internal/services/sample"
	"github.com/jeandelest/Queen-Back-Office/internal/xmljson"
)

func newLoadSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load-sample <file.xml>",
		Short: "Create the survey units of a sample file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := bootstrap(cmd.Context())
			if err != nil {
				return &exitError{code: sample.KOTechnicalError, err: err}
			}
			defer env.Close()

			reader := sample.NewReader(
				env.validator,
				repository.NewCampaignRepository(env.db),
				xmljson.NewLunaticDataConverter(env.cfg.TempDir),
			)
			response, err := sample.NewService(env.db, reader).Ingest(cmd.Context(), args[0])
			if err != nil {
				return &exitError{code: sample.CodeFor(err), err: err}
			}

			logrus.WithFields(logrus.Fields{
				"campaign_id":  response.CampaignID,
				"survey_units": response.SurveyUnits,
			}).Info("Sample loaded")
			fmt.Fprintf(cmd.OutOrStdout(), "%d survey units created for campaign %s\n", response.SurveyUnits, response.CampaignID)
			return nil
		},
	}
}
