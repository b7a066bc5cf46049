package usecase

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
)

type findingTable struct {
	client        interfaces.BigQuery
	schema        bigquery.Schema
	schemaUpdated bool
}

// createOrUpdateBigQueryTable makes sure the table can hold rows shaped like data. The
// table is created when missing and its schema is merged when data has new fields.
func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, data any) (schema bigquery.Schema, schemaUpdated bool, err error) {
	schema, err = bqs.Infer(data)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to infer finding schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, false, goerr.Wrap(err, "failed to create BigQuery table")
		}

		return schema, false, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, false, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, false, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, true, nil
}
