package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/bedrock-profiles-go/internal/adapter/driven/export"
	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(gateway *MockBedrock, console *MockConsole) *ReconcileUseCase {
	return NewReconcileUseCase(gateway, export.NewExportRepository(), console, zerolog.Nop())
}

func sinkRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func items(reqs ...entity.ProfileRequest) []BatchItem {
	out := make([]BatchItem, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, BatchItem{Request: r})
	}
	return out
}

func TestReconcileFoundationScenario(t *testing.T) {
	gateway := newMockBedrock("us-west-2")
	sink := filepath.Join(t.TempDir(), "audit.csv")

	cfg := &types.BatchConfig{
		Region:   "us-west-2",
		Profiles: []types.ProfileSpec{{Name: "p1", ModelType: "foundation", ModelID: "m1"}},
	}
	summary := newEngine(gateway, &MockConsole{}).Reconcile(context.Background(), Batch{Items: CreateItems(cfg), SinkPath: sink})

	require.Len(t, gateway.createCalls, 1)
	assert.Equal(t, "arn:aws:bedrock:us-west-2::foundation-model/m1", gateway.createCalls[0].sourceArn)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, [][]string{
		{"Profile Name", "Profile ARN", "Tags"},
		{"p1", appProfileArn("us-west-2", "p1"), ""},
	}, sinkRows(t, sink))
}

func TestReconcileTagMissingProfile(t *testing.T) {
	gateway := newMockBedrock("us-west-2")
	sink := filepath.Join(t.TempDir(), "audit.csv")

	cfg := &types.BatchConfig{
		Tags:             entity.Tags{{Key: "team", Value: "ml"}},
		ExistingProfiles: []types.ExistingProfile{{Name: "p2"}},
	}
	summary := newEngine(gateway, &MockConsole{}).Reconcile(context.Background(), Batch{Items: TagItems(cfg), Order: OrderTagFirst, SinkPath: sink})

	assert.Equal(t, 1, summary.Failed)
	assert.Zero(t, summary.Succeeded())
	assert.ErrorIs(t, summary.Outcomes[0].Err, types.ErrNotFound)
	assert.Empty(t, gateway.tagCalls)
	assert.Nil(t, sinkRows(t, sink))
}

func TestReconcileCreateTwiceIsNotDuplicated(t *testing.T) {
	gateway := newMockBedrock("us-east-1")
	sink := filepath.Join(t.TempDir(), "audit.csv")
	req := entity.ProfileRequest{Name: "dup", SourceKind: entity.SourceFoundation, SourceRef: "m1"}

	summary := newEngine(gateway, &MockConsole{}).Reconcile(context.Background(), Batch{Items: items(req, req), SinkPath: sink})

	require.Len(t, summary.Outcomes, 2)
	assert.Equal(t, entity.ResultCreated, summary.Outcomes[0].Result)
	assert.Equal(t, entity.ResultFailed, summary.Outcomes[1].Result)
	assert.ErrorIs(t, summary.Outcomes[1].Err, types.ErrAlreadyExists)
	assert.Len(t, gateway.createCalls, 1)
	assert.Len(t, sinkRows(t, sink), 2)
}

func TestReconcilePartialFailureIsolation(t *testing.T) {
	gateway := newMockBedrock("us-east-1").withApplication("existing")
	sink := filepath.Join(t.TempDir(), "audit.csv")
	tags := entity.Tags{{Key: "team", Value: "ml"}, {Key: "env", Value: "prod"}}

	batch := Batch{
		Items: items(
			entity.ProfileRequest{Name: "one", SourceKind: entity.SourceFoundation, SourceRef: "m1", Tags: tags},
			entity.ProfileRequest{SourceKind: entity.SourceExistingByName, SourceRef: "missing", Tags: tags},
			entity.ProfileRequest{SourceKind: entity.SourceExistingByName, SourceRef: "existing", Tags: tags},
		),
		SinkPath: sink,
	}
	console := &MockConsole{}
	summary := newEngine(gateway, console).Reconcile(context.Background(), batch)

	require.Len(t, summary.Outcomes, 3)
	assert.Equal(t, entity.ResultCreated, summary.Outcomes[0].Result)
	assert.Equal(t, entity.ResultFailed, summary.Outcomes[1].Result)
	assert.Equal(t, entity.ResultTagged, summary.Outcomes[2].Result)
	assert.Equal(t, "existing", summary.Outcomes[2].ProfileName)

	rows := sinkRows(t, sink)
	assert.Len(t, rows, 1+summary.Succeeded())
	assert.Equal(t, []string{"one", appProfileArn("us-east-1", "one"), "team=ml; env=prod"}, rows[1])
	assert.Equal(t, []string{"existing", appProfileArn("us-east-1", "existing"), "team=ml; env=prod"}, rows[2])
	assert.Len(t, console.errors, 1)
}

func TestReconcileTagFirstOrder(t *testing.T) {
	gateway := newMockBedrock("us-east-1").withApplication("old")
	batch := Batch{
		Items: items(
			entity.ProfileRequest{Name: "new", SourceKind: entity.SourceFoundation, SourceRef: "m1"},
			entity.ProfileRequest{SourceKind: entity.SourceExistingByArn, SourceRef: appProfileArn("us-east-1", "old")},
			entity.ProfileRequest{Name: "newer", SourceKind: entity.SourceFoundation, SourceRef: "m2"},
		),
		Order:    OrderTagFirst,
		SinkPath: filepath.Join(t.TempDir(), "audit.csv"),
	}

	summary := newEngine(gateway, &MockConsole{}).Reconcile(context.Background(), batch)

	require.Len(t, summary.Outcomes, 3)
	assert.Equal(t, entity.ResultTagged, summary.Outcomes[0].Result)
	assert.Equal(t, "old", summary.Outcomes[0].Name())
	assert.Equal(t, "new", summary.Outcomes[1].Name())
	assert.Equal(t, "newer", summary.Outcomes[2].Name())
}

func TestReconcileFailuresNeverReachSink(t *testing.T) {
	gateway := newMockBedrock("us-east-1").withApplication("tag-me")
	gateway.createErrs["boom"] = &types.RemoteError{Op: "CreateInferenceProfile", Message: "model not supported"}
	gateway.tagErrs[appProfileArn("us-east-1", "tag-me")] = &types.RemoteError{Op: "TagResource", Message: "denied"}
	sink := filepath.Join(t.TempDir(), "audit.csv")

	batch := Batch{
		Items: []BatchItem{
			{Request: entity.ProfileRequest{Name: "boom", SourceKind: entity.SourceFoundation, SourceRef: "m1"}},
			{Request: entity.ProfileRequest{SourceKind: entity.SourceExistingByName, SourceRef: "tag-me"}},
			{Request: entity.ProfileRequest{Name: "", SourceKind: entity.SourceFoundation, SourceRef: "m1"}},
			{Request: entity.ProfileRequest{Name: "bad-type", SourceRef: "m1"}, Err: types.ConfigError("unknown model_type")},
			{Request: entity.ProfileRequest{Name: "ok", SourceKind: entity.SourceFoundation, SourceRef: "m1"}},
		},
		SinkPath: sink,
	}
	console := &MockConsole{}
	summary := newEngine(gateway, console).Reconcile(context.Background(), batch)

	assert.Equal(t, 4, summary.Failed)
	assert.Equal(t, 1, summary.Created)
	assert.Len(t, sinkRows(t, sink), 2)
	assert.Contains(t, summary.Outcomes[0].ErrorDetail(), "model not supported")
	assert.Equal(t, appProfileArn("us-east-1", "tag-me"), summary.Outcomes[1].Arn)
	assert.Contains(t, summary.Outcomes[2].ErrorDetail(), "profile name is required")
	assert.ErrorIs(t, summary.Outcomes[3].Err, types.ErrConfig)
	// bad-type never reached Bedrock
	for _, call := range gateway.createCalls {
		assert.NotEqual(t, "bad-type", call.name)
	}
	assert.Len(t, console.errors, 4)
}

func TestReconcileSinkFailureKeepsCreatedOutcome(t *testing.T) {
	gateway := newMockBedrock("us-east-1")
	console := &MockConsole{}
	sink := filepath.Join(t.TempDir(), "no-such-dir", "audit.csv")

	outcome := newEngine(gateway, console).ProcessOne(context.Background(),
		entity.ProfileRequest{Name: "p", SourceKind: entity.SourceFoundation, SourceRef: "m1"}, sink)

	assert.Equal(t, entity.ResultCreated, outcome.Result)
	assert.NoError(t, outcome.Err)
	require.Len(t, console.errors, 1)
	assert.Contains(t, console.errors[0], "Error saving to CSV")
}

func TestReconcileSummaryReflectsAuditWrites(t *testing.T) {
	req := entity.ProfileRequest{Name: "p", SourceKind: entity.SourceFoundation, SourceRef: "m1"}

	t.Run("unwritable sink", func(t *testing.T) {
		console := &MockConsole{}
		sink := filepath.Join(t.TempDir(), "no-such-dir", "audit.csv")
		engine := newEngine(newMockBedrock("us-east-1"), console)

		summary := engine.Reconcile(context.Background(), Batch{Items: items(req), SinkPath: sink})

		assert.Equal(t, 1, summary.Created)
		assert.Zero(t, engine.Recorded())
		assert.Contains(t, console.warnings, "Processed 1 profiles successfully, but no audit rows were written to "+sink)
		for _, msg := range console.successes {
			assert.NotContains(t, msg, "rows appended")
		}
	})

	t.Run("writable sink", func(t *testing.T) {
		console := &MockConsole{}
		sink := filepath.Join(t.TempDir(), "audit.csv")
		engine := newEngine(newMockBedrock("us-east-1"), console)

		engine.Reconcile(context.Background(), Batch{Items: items(req), SinkPath: sink})

		assert.Equal(t, 1, engine.Recorded())
		assert.Contains(t, console.successes, "Processed 1 profiles successfully, 1 rows appended to "+sink)
	})
}

func TestPartitionKeepsRelativeOrder(t *testing.T) {
	in := items(
		entity.ProfileRequest{Name: "c1", SourceKind: entity.SourceFoundation},
		entity.ProfileRequest{SourceRef: "t1", SourceKind: entity.SourceExistingByName},
		entity.ProfileRequest{Name: "c2", SourceKind: entity.SourceInferenceProfile},
		entity.ProfileRequest{SourceRef: "t2", SourceKind: entity.SourceExistingByArn},
	)
	toTag, toCreate := partition(in)
	require.Len(t, toTag, 2)
	require.Len(t, toCreate, 2)
	assert.Equal(t, "t1", toTag[0].Request.SourceRef)
	assert.Equal(t, "t2", toTag[1].Request.SourceRef)
	assert.Equal(t, "c1", toCreate[0].Request.Name)
	assert.Equal(t, "c2", toCreate[1].Request.Name)
}

func TestCreateAndTagItems(t *testing.T) {
	cfg := &types.BatchConfig{
		Tags: entity.Tags{{Key: "k", Value: "v"}},
		Profiles: []types.ProfileSpec{
			{Name: "a", ModelType: "foundation", ModelID: "m1"},
			{Name: "b", ModelType: "Inference", ModelID: "arn:ip"},
			{Name: "c", ModelType: "custom", ModelID: "x"},
		},
		ExistingProfiles: []types.ExistingProfile{{Name: "n"}, {Arn: "arn:x", Name: "ignored"}, {}},
	}

	created := CreateItems(cfg)
	require.Len(t, created, 3)
	assert.Equal(t, entity.SourceFoundation, created[0].Request.SourceKind)
	assert.Equal(t, entity.SourceInferenceProfile, created[1].Request.SourceKind)
	assert.Equal(t, entity.Tags{{Key: "k", Value: "v"}}, created[1].Request.Tags)
	assert.True(t, errors.Is(created[2].Err, types.ErrConfig))

	tagged := TagItems(cfg)
	require.Len(t, tagged, 3)
	assert.Equal(t, entity.SourceExistingByName, tagged[0].Request.SourceKind)
	assert.Equal(t, entity.SourceExistingByArn, tagged[1].Request.SourceKind)
	assert.Equal(t, "arn:x", tagged[1].Request.SourceRef)
	assert.Error(t, tagged[2].Request.Validate())
}
