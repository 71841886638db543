package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/example/studiodesk/internal/ports/secondary"
)

// mockClientRepo is an in-memory ClientRepository that counts remote writes
// and can be forced to fail.
type mockClientRepo struct {
	mu      sync.Mutex
	records map[string]*secondary.ClientRecord

	setCounterCalls    int
	lastCounterField   secondary.CounterField
	lastCounterValue   int
	assignCalls        int
	lastAssignPackage  string
	lastAssignServings int
	lastAssignImages   int

	failNextWrite error
}

func newMockClientRepo(records ...*secondary.ClientRecord) *mockClientRepo {
	m := &mockClientRepo{records: make(map[string]*secondary.ClientRecord)}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *mockClientRepo) Create(ctx context.Context, client *secondary.ClientRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[client.ID] = client
	return nil
}

func (m *mockClientRepo) GetByID(ctx context.Context, id string) (*secondary.ClientRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("client not found: %s", id)
	}
	cp := *r
	return &cp, nil
}

func (m *mockClientRepo) Update(ctx context.Context, client *secondary.ClientRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[client.ID]; !ok {
		return fmt.Errorf("client not found: %s", client.ID)
	}
	m.records[client.ID] = client
	return nil
}

func (m *mockClientRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *mockClientRepo) List(ctx context.Context, filters secondary.OwnerFilters) ([]*secondary.ClientRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.ClientRecord
	for _, r := range m.records {
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockClientRepo) SetCounter(ctx context.Context, id string, field secondary.CounterField, value int) (*secondary.ClientRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCounterCalls++
	m.lastCounterField = field
	m.lastCounterValue = value
	if m.failNextWrite != nil {
		err := m.failNextWrite
		m.failNextWrite = nil
		return nil, err
	}
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("client not found: %s", id)
	}
	switch field {
	case secondary.CounterServings:
		r.RemainingServings = value
	case secondary.CounterImages:
		r.RemainingImages = value
	case secondary.CounterTrainingUnits:
		r.AITrainingUnits = value
	}
	cp := *r
	return &cp, nil
}

func (m *mockClientRepo) AssignPackage(ctx context.Context, id, packageID string, servings, images int, note string) (*secondary.ClientRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignCalls++
	m.lastAssignPackage = packageID
	m.lastAssignServings = servings
	m.lastAssignImages = images
	if m.failNextWrite != nil {
		err := m.failNextWrite
		m.failNextWrite = nil
		return nil, err
	}
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("client not found: %s", id)
	}
	r.CurrentPackageID = packageID
	r.RemainingServings = servings
	r.RemainingImages = images
	cp := *r
	return &cp, nil
}

var _ secondary.ClientRepository = (*mockClientRepo)(nil)

// mockAffiliateRepo is an in-memory AffiliateRepository.
type mockAffiliateRepo struct {
	mu      sync.Mutex
	records map[string]*secondary.AffiliateRecord

	setCounterCalls  int
	lastCounterValue int
	failNextWrite    error
}

func newMockAffiliateRepo(records ...*secondary.AffiliateRecord) *mockAffiliateRepo {
	m := &mockAffiliateRepo{records: make(map[string]*secondary.AffiliateRecord)}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *mockAffiliateRepo) Create(ctx context.Context, affiliate *secondary.AffiliateRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[affiliate.ID] = affiliate
	return nil
}

func (m *mockAffiliateRepo) GetByID(ctx context.Context, id string) (*secondary.AffiliateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("affiliate not found: %s", id)
	}
	cp := *r
	return &cp, nil
}

func (m *mockAffiliateRepo) Update(ctx context.Context, affiliate *secondary.AffiliateRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[affiliate.ID]; !ok {
		return fmt.Errorf("affiliate not found: %s", affiliate.ID)
	}
	m.records[affiliate.ID] = affiliate
	return nil
}

func (m *mockAffiliateRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *mockAffiliateRepo) List(ctx context.Context, filters secondary.OwnerFilters) ([]*secondary.AffiliateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.AffiliateRecord
	for _, r := range m.records {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockAffiliateRepo) SetCounter(ctx context.Context, id string, field secondary.CounterField, value int) (*secondary.AffiliateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCounterCalls++
	m.lastCounterValue = value
	if m.failNextWrite != nil {
		err := m.failNextWrite
		m.failNextWrite = nil
		return nil, err
	}
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("affiliate not found: %s", id)
	}
	switch field {
	case secondary.CounterServings:
		r.RemainingServings = value
	case secondary.CounterImages:
		r.RemainingImages = value
	case secondary.CounterTrainingUnits:
		r.AITrainingUnits = value
	}
	cp := *r
	return &cp, nil
}

func (m *mockAffiliateRepo) AssignPackage(ctx context.Context, id, packageID string, servings, images int, note string) (*secondary.AffiliateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNextWrite != nil {
		err := m.failNextWrite
		m.failNextWrite = nil
		return nil, err
	}
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("affiliate not found: %s", id)
	}
	r.CurrentPackageID = packageID
	r.RemainingServings = servings
	r.RemainingImages = images
	cp := *r
	return &cp, nil
}

var _ secondary.AffiliateRepository = (*mockAffiliateRepo)(nil)

// mockPackageRepo is an in-memory PackageRepository.
type mockPackageRepo struct {
	mu      sync.Mutex
	records map[string]*secondary.PackageRecord

	deleteCalls []string
}

func newMockPackageRepo(records ...*secondary.PackageRecord) *mockPackageRepo {
	m := &mockPackageRepo{records: make(map[string]*secondary.PackageRecord)}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *mockPackageRepo) Create(ctx context.Context, pkg *secondary.PackageRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[pkg.ID] = pkg
	return nil
}

func (m *mockPackageRepo) GetByID(ctx context.Context, id string) (*secondary.PackageRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("package not found: %s", id)
	}
	cp := *r
	return &cp, nil
}

func (m *mockPackageRepo) Update(ctx context.Context, pkg *secondary.PackageRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[pkg.ID]; !ok {
		return fmt.Errorf("package not found: %s", pkg.ID)
	}
	m.records[pkg.ID] = pkg
	return nil
}

func (m *mockPackageRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls = append(m.deleteCalls, id)
	delete(m.records, id)
	return nil
}

func (m *mockPackageRepo) List(ctx context.Context, filters secondary.PackageFilters) ([]*secondary.PackageRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.PackageRecord
	for _, r := range m.records {
		if filters.ActiveOnly && !r.IsActive {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

var _ secondary.PackageRepository = (*mockPackageRepo)(nil)

// mockLeadRepo is an in-memory LeadRepository.
type mockLeadRepo struct {
	mu      sync.Mutex
	records map[string]*secondary.LeadRecord
}

func newMockLeadRepo(records ...*secondary.LeadRecord) *mockLeadRepo {
	m := &mockLeadRepo{records: make(map[string]*secondary.LeadRecord)}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *mockLeadRepo) Create(ctx context.Context, lead *secondary.LeadRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[lead.ID] = lead
	return nil
}

func (m *mockLeadRepo) GetByID(ctx context.Context, id string) (*secondary.LeadRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("lead not found: %s", id)
	}
	cp := *r
	return &cp, nil
}

func (m *mockLeadRepo) Update(ctx context.Context, lead *secondary.LeadRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[lead.ID]; !ok {
		return fmt.Errorf("lead not found: %s", lead.ID)
	}
	m.records[lead.ID] = lead
	return nil
}

func (m *mockLeadRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *mockLeadRepo) List(ctx context.Context, filters secondary.OwnerFilters) ([]*secondary.LeadRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.LeadRecord
	for _, r := range m.records {
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

var _ secondary.LeadRepository = (*mockLeadRepo)(nil)

// mockSubmissionRepo is an in-memory SubmissionRepository.
type mockSubmissionRepo struct {
	mu      sync.Mutex
	records map[string]*secondary.SubmissionRecord

	statusCalls int
	imageWrites [][]string
}

func newMockSubmissionRepo(records ...*secondary.SubmissionRecord) *mockSubmissionRepo {
	m := &mockSubmissionRepo{records: make(map[string]*secondary.SubmissionRecord)}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *mockSubmissionRepo) Create(ctx context.Context, sub *secondary.SubmissionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[sub.ID] = sub
	return nil
}

func (m *mockSubmissionRepo) GetByID(ctx context.Context, id string) (*secondary.SubmissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("submission not found: %s", id)
	}
	cp := *r
	cp.OriginalImageURLs = append([]string(nil), r.OriginalImageURLs...)
	cp.ProcessedImageURLs = append([]string(nil), r.ProcessedImageURLs...)
	return &cp, nil
}

func (m *mockSubmissionRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *mockSubmissionRepo) List(ctx context.Context, filters secondary.SubmissionFilters) ([]*secondary.SubmissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.SubmissionRecord
	for _, r := range m.records {
		if filters.OwnerID != "" && r.OwnerID != filters.OwnerID {
			continue
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockSubmissionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCalls++
	r, ok := m.records[id]
	if !ok {
		return fmt.Errorf("submission not found: %s", id)
	}
	r.Status = status
	return nil
}

func (m *mockSubmissionRepo) UpdateProcessedImages(ctx context.Context, id string, urls []string) (*secondary.SubmissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.imageWrites = append(m.imageWrites, append([]string(nil), urls...))
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("submission not found: %s", id)
	}
	r.ProcessedImageURLs = append([]string(nil), urls...)
	cp := *r
	cp.ProcessedImageURLs = append([]string(nil), r.ProcessedImageURLs...)
	return &cp, nil
}

var _ secondary.SubmissionRepository = (*mockSubmissionRepo)(nil)

// mockWorkSessionRepo records created sessions.
type mockWorkSessionRepo struct {
	mu       sync.Mutex
	sessions []*secondary.WorkSessionRecord
}

func (m *mockWorkSessionRepo) Create(ctx context.Context, session *secondary.WorkSessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, session)
	return nil
}

func (m *mockWorkSessionRepo) List(ctx context.Context, filters secondary.WorkSessionFilters) ([]*secondary.WorkSessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.WorkSessionRecord
	for _, s := range m.sessions {
		if filters.OwnerID != "" && s.OwnerID != filters.OwnerID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

var _ secondary.WorkSessionRepository = (*mockWorkSessionRepo)(nil)

// mockCommentRepo is an in-memory CommentRepository.
type mockCommentRepo struct {
	mu      sync.Mutex
	records map[string]*secondary.CommentRecord
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{records: make(map[string]*secondary.CommentRecord)}
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *secondary.CommentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[comment.ID] = comment
	return nil
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id string) (*secondary.CommentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("comment not found: %s", id)
	}
	cp := *r
	return &cp, nil
}

func (m *mockCommentRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *mockCommentRepo) ListBySubmission(ctx context.Context, submissionID string) ([]*secondary.CommentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.CommentRecord
	for _, r := range m.records {
		if r.SubmissionID == submissionID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

var _ secondary.CommentRepository = (*mockCommentRepo)(nil)

// fakeClock returns a controllable time.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ secondary.Clock = (*fakeClock)(nil)

// seqIDs generates deterministic sequential IDs.
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}

var _ secondary.IDGenerator = (*seqIDs)(nil)

// memTimers is an in-memory TimerStore.
type memTimers struct {
	mu     sync.Mutex
	timers map[string]time.Time
}

func newMemTimers() *memTimers { return &memTimers{timers: make(map[string]time.Time)} }

func (m *memTimers) key(ownerType, ownerID string) string { return ownerType + "/" + ownerID }

func (m *memTimers) Start(ownerType, ownerID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(ownerType, ownerID)
	if _, running := m.timers[k]; running {
		return fmt.Errorf("timer already running for %s", k)
	}
	m.timers[k] = at
	return nil
}

func (m *memTimers) Get(ownerType, ownerID string) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.timers[m.key(ownerType, ownerID)]
	return at, ok, nil
}

func (m *memTimers) Clear(ownerType, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.timers, m.key(ownerType, ownerID))
	return nil
}

var _ secondary.TimerStore = (*memTimers)(nil)

// memVault stores blobs in memory and serves fake public URLs.
type memVault struct {
	mu    sync.Mutex
	blobs map[string][]byte

	failNextPut error
}

func newMemVault() *memVault { return &memVault{blobs: make(map[string][]byte)} }

func (v *memVault) Put(ctx context.Context, path string, r io.Reader, size int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.failNextPut != nil {
		err := v.failNextPut
		v.failNextPut = nil
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	v.blobs[path] = data
	return nil
}

func (v *memVault) PublicURL(path string) string {
	return "https://blobs.test/" + path
}

func (v *memVault) ValidateSetup(ctx context.Context) error { return nil }

var _ secondary.BlobVault = (*memVault)(nil)
