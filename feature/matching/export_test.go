package matching

import (
	"context"
	"io"
	"strings"
	"testing"

	"crm-matcher/core/match"
	"crm-matcher/core/normalize"
	"crm-matcher/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleResult() *match.Result {
	a := normalize.BuildNameSet([]string{"Acme Corp", "Globex", "Initech"}, normalize.DefaultOptions)
	b := normalize.BuildNameSet([]string{"acme corp", "Umbrella"}, normalize.DefaultOptions)
	return match.Reconcile(a, b)
}

func TestExportDetailsUploadsThreeLists(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "matcher-exports").Return(true, nil)

	var uploaded []string
	client.On("PutObject", mock.Anything, "matcher-exports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			uploaded = append(uploaded, args.String(2))
		}).
		Return(minio.UploadInfo{}, nil)

	exp := NewExporter(client, "matcher-exports", zap.NewNop())
	prefix, err := exp.ExportDetails(context.Background(), "123", sampleResult())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prefix, "exports/123/"))
	require.Len(t, uploaded, 3)
	assert.Equal(t, prefix+"/matched.csv", uploaded[0])
	assert.Equal(t, prefix+"/only_crm.csv", uploaded[1])
	assert.Equal(t, prefix+"/only_leads.csv", uploaded[2])
	client.AssertExpectations(t)
}

func TestExportDetailsCreatesMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "matcher-exports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "matcher-exports", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "matcher-exports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	exp := NewExporter(client, "matcher-exports", zap.NewNop())
	_, err := exp.ExportDetails(context.Background(), "all", sampleResult())
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestExportDetailsCSVContent(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "matcher-exports").Return(true, nil)

	bodies := map[string]string{}
	client.On("PutObject", mock.Anything, "matcher-exports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			r := args.Get(3).(io.Reader)
			data, _ := io.ReadAll(r)
			bodies[args.String(2)] = string(data)
		}).
		Return(minio.UploadInfo{}, nil)

	exp := NewExporter(client, "matcher-exports", zap.NewNop())
	prefix, err := exp.ExportDetails(context.Background(), "123", sampleResult())
	require.NoError(t, err)

	matched := bodies[prefix+"/matched.csv"]
	assert.Contains(t, matched, "normalized,original")
	assert.Contains(t, matched, "acme corp,Acme Corp")

	onlyLeads := bodies[prefix+"/only_leads.csv"]
	assert.Contains(t, onlyLeads, "umbrella,Umbrella")
}
