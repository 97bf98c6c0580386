package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/domain/repository"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
)

// MockConsole replays scripted answers and records everything printed.
type MockConsole struct {
	answers   []string
	confirms  []bool
	secrets   []string
	prompts   []string
	infos     []string
	warnings  []string
	errors    []string
	successes []string
	output    strings.Builder
}

func (c *MockConsole) Print(a ...interface{})                 { fmt.Fprint(&c.output, a...) }
func (c *MockConsole) Printf(format string, a ...interface{}) { fmt.Fprintf(&c.output, format, a...) }
func (c *MockConsole) Println(a ...interface{})               { fmt.Fprintln(&c.output, a...) }
func (c *MockConsole) Section(title string)                   { fmt.Fprintf(&c.output, "=== %s ===\n", title) }

func (c *MockConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}
func (c *MockConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}
func (c *MockConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}
func (c *MockConsole) LogSuccess(format string, a ...interface{}) {
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}

func (c *MockConsole) Status(message string) types.StatusHandle { return mockStatus{} }
func (c *MockConsole) CreateTable() types.TableInterface        { return &mockTable{} }

func (c *MockConsole) Prompt(label string, def string) (string, error) {
	c.prompts = append(c.prompts, label)
	if len(c.answers) == 0 {
		return "", io.EOF
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (c *MockConsole) PromptSecret(label string) (string, error) {
	c.prompts = append(c.prompts, label)
	if len(c.secrets) == 0 {
		return "", io.EOF
	}
	secret := c.secrets[0]
	c.secrets = c.secrets[1:]
	return secret, nil
}

func (c *MockConsole) Confirm(label string, def bool) (bool, error) {
	c.prompts = append(c.prompts, label)
	if len(c.confirms) == 0 {
		return def, io.EOF
	}
	ok := c.confirms[0]
	c.confirms = c.confirms[1:]
	return ok, nil
}

type mockStatus struct{}

func (mockStatus) Update(string) {}
func (mockStatus) Stop()         {}

type mockTable struct {
	rows int
}

func (t *mockTable) AddColumn(name string, options ...interface{}) {}
func (t *mockTable) AddRow(cells ...interface{})                   { t.rows++ }
func (t *mockTable) Render() string                                { return fmt.Sprintf("<table rows=%d>\n", t.rows) }

// MockBedrock is an in-memory Bedrock gateway.
type MockBedrock struct {
	region      string
	models      []entity.ModelSummary
	application []entity.RemoteProfile
	system      []entity.RemoteProfile

	listErr    error
	createErrs map[string]error
	tagErrs    map[string]error
	deleteErrs map[string]error

	createCalls []createCall
	tagCalls    []string
	deleteCalls []string
}

type createCall struct {
	name, sourceArn string
	tags            entity.Tags
}

var _ repository.BedrockRepository = (*MockBedrock)(nil)

func newMockBedrock(region string) *MockBedrock {
	return &MockBedrock{
		region:     region,
		createErrs: map[string]error{},
		tagErrs:    map[string]error{},
		deleteErrs: map[string]error{},
	}
}

func appProfileArn(region, name string) string {
	return fmt.Sprintf("arn:aws:bedrock:%s:123456789012:application-inference-profile/%s-id", region, name)
}

func (m *MockBedrock) withApplication(names ...string) *MockBedrock {
	for _, n := range names {
		m.application = append(m.application, entity.RemoteProfile{
			Name:                n,
			Region:              m.region,
			InferenceProfileArn: appProfileArn(m.region, n),
			InferenceProfileID:  n + "-id",
			Status:              entity.StatusActive,
			Type:                entity.ProfileTypeApplication,
		})
	}
	return m
}

func (m *MockBedrock) Region() string { return m.region }

func (m *MockBedrock) ListModels(ctx context.Context, keyword string) ([]entity.ModelSummary, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []entity.ModelSummary
	for _, model := range m.models {
		if strings.Contains(strings.ToLower(model.ModelID), strings.ToLower(keyword)) {
			out = append(out, model)
		}
	}
	return out, nil
}

func (m *MockBedrock) ListProfiles(ctx context.Context, profileType entity.ProfileType) ([]entity.RemoteProfile, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if profileType == entity.ProfileTypeSystemDefined {
		return append([]entity.RemoteProfile(nil), m.system...), nil
	}
	return append([]entity.RemoteProfile(nil), m.application...), nil
}

func (m *MockBedrock) GetProfileByArn(ctx context.Context, arn string) (entity.RemoteProfile, error) {
	for _, p := range m.application {
		if p.InferenceProfileArn == arn {
			return p, nil
		}
	}
	return entity.RemoteProfile{}, fmt.Errorf("%w: remote lookup", types.ErrNotFound)
}

func (m *MockBedrock) CreateProfile(ctx context.Context, name, sourceArn string, tags entity.Tags) (entity.RemoteProfile, error) {
	m.createCalls = append(m.createCalls, createCall{name: name, sourceArn: sourceArn, tags: tags})
	if err := m.createErrs[name]; err != nil {
		return entity.RemoteProfile{}, err
	}
	m.withApplication(name)
	return m.application[len(m.application)-1], nil
}

func (m *MockBedrock) TagResource(ctx context.Context, arn string, tags entity.Tags) error {
	m.tagCalls = append(m.tagCalls, arn)
	return m.tagErrs[arn]
}

func (m *MockBedrock) DeleteProfile(ctx context.Context, arn string) error {
	m.deleteCalls = append(m.deleteCalls, arn)
	if err := m.deleteErrs[arn]; err != nil {
		return err
	}
	for i, p := range m.application {
		if p.InferenceProfileArn == arn {
			m.application = append(m.application[:i], m.application[i+1:]...)
			break
		}
	}
	return nil
}

// MockSessionRepository hands out a fixed gateway and records the session it was asked for.
type MockSessionRepository struct {
	profiles       []string
	hasDefault     bool
	verifyErr      error
	bedrock        *MockBedrock
	verified       []entity.Session
	requestedRepos []entity.Session
}

func (m *MockSessionRepository) GetAWSProfiles() []string { return m.profiles }

func (m *MockSessionRepository) HasDefaultCredentials(ctx context.Context) bool { return m.hasDefault }

func (m *MockSessionRepository) VerifySession(ctx context.Context, session entity.Session) (string, error) {
	m.verified = append(m.verified, session)
	if m.verifyErr != nil {
		return "", m.verifyErr
	}
	return "123456789012", nil
}

func (m *MockSessionRepository) NewBedrockRepository(ctx context.Context, session entity.Session) (repository.BedrockRepository, error) {
	m.requestedRepos = append(m.requestedRepos, session)
	m.bedrock.region = session.Region
	return m.bedrock, nil
}
