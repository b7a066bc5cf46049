package bq

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/bigquery/storage/managedwriter"
	"cloud.google.com/go/bigquery/storage/managedwriter/adapt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
	"github.com/secmon-lab/ghcrawl/pkg/utils/safe"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	insertRetryLimit   = 5
	insertRetryBackoff = 2 * time.Second
)

// Client writes finding rows to one BigQuery table through the Storage Write API.
type Client struct {
	bqClient *bigquery.Client
	mwClient *managedwriter.Client
	project  string
	dataset  string
	tableID  types.BQTableID
}

var _ interfaces.BigQuery = (*Client)(nil)

func New(ctx context.Context, projectID types.GoogleProjectID, datasetID types.BQDatasetID, tableID types.BQTableID, options ...option.ClientOption) (*Client, error) {
	mwClient, err := managedwriter.NewClient(ctx, projectID.String(), options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create managed writer client", goerr.V("projectID", projectID))
	}

	bqClient, err := bigquery.NewClient(ctx, projectID.String(), options...)
	if err != nil {
		safe.Close(mwClient)
		return nil, goerr.Wrap(err, "failed to create BigQuery client", goerr.V("projectID", projectID))
	}

	return &Client{
		bqClient: bqClient,
		mwClient: mwClient,
		project:  projectID.String(),
		dataset:  datasetID.String(),
		tableID:  tableID,
	}, nil
}

func (x *Client) Close() error {
	return errors.Join(x.mwClient.Close(), x.bqClient.Close())
}

func (x *Client) table() *bigquery.Table {
	return x.bqClient.Dataset(x.dataset).Table(x.tableID.String())
}

// CreateTable implements interfaces.BigQuery.
func (x *Client) CreateTable(ctx context.Context, md *bigquery.TableMetadata) error {
	if err := x.table().Create(ctx, md); err != nil {
		return goerr.Wrap(err, "failed to create table", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
	}
	return nil
}

// GetMetadata implements interfaces.BigQuery. If the table does not exist, it returns nil.
func (x *Client) GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error) {
	md, err := x.table().Metadata(ctx)
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && gErr.Code == 404 {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get table metadata", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
	}

	return md, nil
}

// UpdateTable implements interfaces.BigQuery.
func (x *Client) UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
	if _, err := x.table().Update(ctx, md, eTag); err != nil {
		return goerr.Wrap(err, "failed to update table", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID), goerr.V("meta", md))
	}

	return nil
}

// Insert implements interfaces.BigQuery. data is encoded through its JSON form, so json
// tags must match the column names of schema.
func (x *Client) Insert(ctx context.Context, schema bigquery.Schema, data any, opts ...interfaces.BigQueryInsertOption) error {
	var cfg interfaces.BigQueryInsertConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	enc, err := newRowEncoder(schema)
	if err != nil {
		return err
	}
	row, err := enc.encode(data)
	if err != nil {
		return err
	}

	for i := 0; ; i++ {
		err := x.appendRows(ctx, enc.descriptor, [][]byte{row})
		if err == nil {
			return nil
		}
		if !cfg.EnableRetry || i >= insertRetryLimit || !IsSchemaNotFoundError(err) {
			return err
		}

		wait := insertRetryBackoff * time.Duration(i+1)
		logging.From(ctx).Warn("Write stream has not caught up with schema, retrying",
			slog.String("table", x.tableID.String()),
			slog.Int("attempt", i+1),
			slog.Duration("wait", wait),
		)

		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "interrupted while retrying insert")
		case <-time.After(wait):
		}
	}
}

func (x *Client) appendRows(ctx context.Context, descriptor *descriptorpb.DescriptorProto, rows [][]byte) error {
	ms, err := x.mwClient.NewManagedStream(ctx,
		managedwriter.WithDestinationTable(
			managedwriter.TableParentFromParts(x.project, x.dataset, x.tableID.String()),
		),
		managedwriter.WithSchemaDescriptor(descriptor),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to create managed stream")
	}
	defer safe.Close(ms)

	result, err := ms.AppendRows(ctx, rows)
	if err != nil {
		return goerr.Wrap(err, "failed to append rows")
	}
	if _, err := result.FullResponse(ctx); err != nil {
		return goerr.Wrap(err, "failed to get append result", goerr.V("rows", len(rows)))
	}

	return nil
}

// IsSchemaNotFoundError reports whether err was caused by the write stream rejecting
// fields it does not know yet, which happens right after a table schema update.
func IsSchemaNotFoundError(err error) bool {
	for err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.InvalidArgument {
			if strings.Contains(st.Message(), "Input schema has more fields than BigQuery schema") {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}

type rowEncoder struct {
	message    protoreflect.MessageDescriptor
	descriptor *descriptorpb.DescriptorProto
}

func newRowEncoder(schema bigquery.Schema) (*rowEncoder, error) {
	storageSchema, err := adapt.BQSchemaToStorageTableSchema(schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to convert schema")
	}

	descriptor, err := adapt.StorageSchemaToProto2Descriptor(storageSchema, "root")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to convert schema to descriptor")
	}
	message, ok := descriptor.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, goerr.New("adapted descriptor is not a message descriptor")
	}
	normalized, err := adapt.NormalizeDescriptor(message)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to normalize descriptor")
	}

	return &rowEncoder{message: message, descriptor: normalized}, nil
}

// encode converts data to a serialized proto row: data -> JSON -> dynamic message.
func (x *rowEncoder) encode(data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal row", goerr.V("v", data))
	}
	sanitized, err := sanitizeProtoJSON(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to sanitize row", goerr.V("raw", string(raw)))
	}

	message := dynamicpb.NewMessage(x.message)
	if err := protojson.Unmarshal(sanitized, message); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal row into proto message", goerr.V("raw", string(raw)))
	}

	b, err := proto.Marshal(message)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal proto message")
	}
	return b, nil
}

// sanitizeProtoJSON renames object keys that are not valid proto field names, matching
// the column names adapt derives for them.
func sanitizeProtoJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return json.Marshal(sanitizeProtoJSONValue(data))
}

func sanitizeProtoJSONValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		res := make(map[string]any, len(val))
		for key, value := range val {
			res[protoFieldJSONName(key)] = sanitizeProtoJSONValue(value)
		}
		return res
	case []any:
		for i := range val {
			val[i] = sanitizeProtoJSONValue(val[i])
		}
		return val
	default:
		return v
	}
}

func protoFieldJSONName(name string) string {
	if protoreflect.Name(name).IsValid() {
		return name
	}
	encoded := base64.RawStdEncoding.EncodeToString([]byte(name))
	return "col_" + strings.NewReplacer("+", "_", "/", "_").Replace(encoded)
}
