package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

// MockTx is a mock transaction.
type MockTx struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Commits   int
	Rollbacks int
}

func (t *MockTx) Commit(ctx context.Context) error {
	t.Commits++
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	t.Rollbacks++
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	Begun int
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	m.Begun++
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTx{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%04d", m.next)
}

// MockReplayLock is a mock implementation of ReplayLock.
type MockReplayLock struct {
	AcquireFunc func(ctx context.Context, accountID string) (bool, error)
	ReleaseFunc func(ctx context.Context, accountID string) error

	mu   sync.Mutex
	held map[string]bool
}

func NewMockReplayLock() *MockReplayLock {
	return &MockReplayLock{held: make(map[string]bool)}
}

func (m *MockReplayLock) Acquire(ctx context.Context, accountID string) (bool, error) {
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[accountID] {
		return false, nil
	}
	m.held[accountID] = true
	return true, nil
}

func (m *MockReplayLock) Release(ctx context.Context, accountID string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, accountID)
	return nil
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error

	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// MockLoanAccountRepository is a mock implementation of LoanAccountRepository.
type MockLoanAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.LoanAccount

	CreateFunc               func(ctx context.Context, tx usecase.Transaction, account *domain.LoanAccount) error
	GetByIDFunc              func(ctx context.Context, id string) (*domain.LoanAccount, error)
	GetByIDForUpdateFunc     func(ctx context.Context, tx usecase.Transaction, id string) (*domain.LoanAccount, error)
	GetByUserIDFunc          func(ctx context.Context, userID string) (*domain.LoanAccount, error)
	GetByUserIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userID string) (*domain.LoanAccount, error)
	UpdateBalancesFunc       func(ctx context.Context, tx usecase.Transaction, id string, balance, totalBonuses, totalWithdrawals decimal.Decimal, updatedAt time.Time) error
	ListFunc                 func(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error)
}

func NewMockLoanAccountRepository() *MockLoanAccountRepository {
	return &MockLoanAccountRepository{accounts: make(map[string]*domain.LoanAccount)}
}

// Seed stores an account directly, bypassing the Create hook.
func (m *MockLoanAccountRepository) Seed(account *domain.LoanAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockLoanAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.LoanAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockLoanAccountRepository) GetByID(ctx context.Context, id string) (*domain.LoanAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if account, ok := m.accounts[id]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockLoanAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LoanAccount, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockLoanAccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.LoanAccount, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, account := range m.accounts {
		if account.UserID == userID {
			return account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockLoanAccountRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.LoanAccount, error) {
	if m.GetByUserIDForUpdateFunc != nil {
		return m.GetByUserIDForUpdateFunc(ctx, tx, userID)
	}
	return m.GetByUserID(ctx, userID)
}

func (m *MockLoanAccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, id string, balance, totalBonuses, totalWithdrawals decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalancesFunc != nil {
		return m.UpdateBalancesFunc(ctx, tx, id, balance, totalBonuses, totalWithdrawals, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.CurrentBalance = balance
	account.TotalBonuses = totalBonuses
	account.TotalWithdrawals = totalWithdrawals
	account.UpdatedAt = updatedAt
	return nil
}

func (m *MockLoanAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.LoanAccount, 0, len(m.accounts))
	for _, account := range m.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns []*domain.Transaction

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListForReplayFunc func(ctx context.Context, accountID string) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Seed(txns ...*domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, txns...)
}

func (m *MockTransactionRepository) All() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, len(m.txns))
	copy(out, m.txns)
	return out
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, txn)
	return nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	all, _ := m.ListForReplay(ctx, accountID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockTransactionRepository) ListForReplay(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	if m.ListForReplayFunc != nil {
		return m.ListForReplayFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, txn := range m.txns {
		if txn.LoanAccountID == accountID {
			out = append(out, txn)
		}
	}
	domain.SortForReplay(out)
	return out, nil
}

// MockMonthlyBalanceRepository is a mock implementation of MonthlyBalanceRepository.
type MockMonthlyBalanceRepository struct {
	mu   sync.RWMutex
	rows map[string][]*domain.MonthlyBalance

	ReplaceForAccountFunc func(ctx context.Context, tx usecase.Transaction, accountID string, rows []*domain.MonthlyBalance) error
	ListByAccountFunc     func(ctx context.Context, accountID string) ([]*domain.MonthlyBalance, error)
}

func NewMockMonthlyBalanceRepository() *MockMonthlyBalanceRepository {
	return &MockMonthlyBalanceRepository{rows: make(map[string][]*domain.MonthlyBalance)}
}

func (m *MockMonthlyBalanceRepository) ReplaceForAccount(ctx context.Context, tx usecase.Transaction, accountID string, rows []*domain.MonthlyBalance) error {
	if m.ReplaceForAccountFunc != nil {
		return m.ReplaceForAccountFunc(ctx, tx, accountID, rows)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[accountID] = rows
	return nil
}

func (m *MockMonthlyBalanceRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.MonthlyBalance, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rows[accountID], nil
}

// MockYieldDepositRepository is a mock implementation of YieldDepositRepository.
type MockYieldDepositRepository struct {
	mu       sync.RWMutex
	deposits map[string]*domain.YieldDeposit

	CreateFunc                    func(ctx context.Context, tx usecase.Transaction, deposit *domain.YieldDeposit) error
	GetByIDFunc                   func(ctx context.Context, id string) (*domain.YieldDeposit, error)
	GetByIDForUpdateFunc          func(ctx context.Context, tx usecase.Transaction, id string) (*domain.YieldDeposit, error)
	ListActiveByUserForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userID string) ([]*domain.YieldDeposit, error)
	ListByStatusFunc              func(ctx context.Context, status domain.DepositStatus, limit, offset int) ([]*domain.YieldDeposit, error)
	ListPayableFunc               func(ctx context.Context, asOf time.Time) ([]*domain.YieldDeposit, error)
	UpdatePrincipalFunc           func(ctx context.Context, tx usecase.Transaction, id string, principal decimal.Decimal, status domain.DepositStatus, updatedAt time.Time) error
	UpdateFunc                    func(ctx context.Context, tx usecase.Transaction, deposit *domain.YieldDeposit) error
	SoftDeleteFunc                func(ctx context.Context, tx usecase.Transaction, id string, deletedAt time.Time) error
	RecordPayoutFunc              func(ctx context.Context, tx usecase.Transaction, id string, totalPaidOut decimal.Decimal, lastPayoutDate, updatedAt time.Time) error
}

func NewMockYieldDepositRepository() *MockYieldDepositRepository {
	return &MockYieldDepositRepository{deposits: make(map[string]*domain.YieldDeposit)}
}

func (m *MockYieldDepositRepository) Seed(deposits ...*domain.YieldDeposit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range deposits {
		m.deposits[d.ID] = d
	}
}

func (m *MockYieldDepositRepository) Create(ctx context.Context, tx usecase.Transaction, deposit *domain.YieldDeposit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, deposit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deposits[deposit.ID] = deposit
	return nil
}

func (m *MockYieldDepositRepository) GetByID(ctx context.Context, id string) (*domain.YieldDeposit, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.deposits[id]; ok && d.DeletedAt == nil {
		return d, nil
	}
	return nil, domain.ErrDepositNotFound
}

func (m *MockYieldDepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.YieldDeposit, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockYieldDepositRepository) ListActiveByUserForUpdate(ctx context.Context, tx usecase.Transaction, userID string) ([]*domain.YieldDeposit, error) {
	if m.ListActiveByUserForUpdateFunc != nil {
		return m.ListActiveByUserForUpdateFunc(ctx, tx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.YieldDeposit
	for _, d := range m.deposits {
		if d.UserID == userID && d.Status == domain.DepositStatusActive && d.DeletedAt == nil {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MockYieldDepositRepository) ListByStatus(ctx context.Context, status domain.DepositStatus, limit, offset int) ([]*domain.YieldDeposit, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.YieldDeposit
	for _, d := range m.deposits {
		if d.DeletedAt != nil {
			continue
		}
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockYieldDepositRepository) ListPayable(ctx context.Context, asOf time.Time) ([]*domain.YieldDeposit, error) {
	if m.ListPayableFunc != nil {
		return m.ListPayableFunc(ctx, asOf)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.YieldDeposit
	for _, d := range m.deposits {
		if d.Payable(asOf) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockYieldDepositRepository) UpdatePrincipal(ctx context.Context, tx usecase.Transaction, id string, principal decimal.Decimal, status domain.DepositStatus, updatedAt time.Time) error {
	if m.UpdatePrincipalFunc != nil {
		return m.UpdatePrincipalFunc(ctx, tx, id, principal, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deposits[id]
	if !ok {
		return domain.ErrDepositNotFound
	}
	d.PrincipalAmount = principal
	d.Status = status
	d.UpdatedAt = updatedAt
	return nil
}

func (m *MockYieldDepositRepository) Update(ctx context.Context, tx usecase.Transaction, deposit *domain.YieldDeposit) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, deposit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.deposits[deposit.ID]; !ok {
		return domain.ErrDepositNotFound
	}
	m.deposits[deposit.ID] = deposit
	return nil
}

func (m *MockYieldDepositRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, id string, deletedAt time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, tx, id, deletedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deposits[id]
	if !ok {
		return domain.ErrDepositNotFound
	}
	d.DeletedAt = &deletedAt
	return nil
}

func (m *MockYieldDepositRepository) RecordPayout(ctx context.Context, tx usecase.Transaction, id string, totalPaidOut decimal.Decimal, lastPayoutDate, updatedAt time.Time) error {
	if m.RecordPayoutFunc != nil {
		return m.RecordPayoutFunc(ctx, tx, id, totalPaidOut, lastPayoutDate, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deposits[id]
	if !ok {
		return domain.ErrDepositNotFound
	}
	d.TotalPaidOut = totalPaidOut
	d.LastPayoutDate = &lastPayoutDate
	d.UpdatedAt = updatedAt
	return nil
}

// MockYieldPayoutRepository is a mock implementation of YieldPayoutRepository.
type MockYieldPayoutRepository struct {
	mu      sync.RWMutex
	payouts []*domain.YieldPayout

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, payout *domain.YieldPayout) error
	ExistsFunc        func(ctx context.Context, depositID string, payoutDate time.Time, kind domain.PayoutKind) (bool, error)
	ListByDateFunc    func(ctx context.Context, payoutDate time.Time, kind domain.PayoutKind) ([]*domain.YieldPayout, error)
	ListByDepositFunc func(ctx context.Context, depositID string, limit, offset int) ([]*domain.YieldPayout, error)
	SumForDepositFunc func(ctx context.Context, depositID string, kind domain.PayoutKind, from, to time.Time) (decimal.Decimal, error)
}

func NewMockYieldPayoutRepository() *MockYieldPayoutRepository {
	return &MockYieldPayoutRepository{}
}

func (m *MockYieldPayoutRepository) Seed(payouts ...*domain.YieldPayout) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payouts = append(m.payouts, payouts...)
}

func (m *MockYieldPayoutRepository) All() []*domain.YieldPayout {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.YieldPayout, len(m.payouts))
	copy(out, m.payouts)
	return out
}

func (m *MockYieldPayoutRepository) Create(ctx context.Context, tx usecase.Transaction, payout *domain.YieldPayout) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, payout)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payouts = append(m.payouts, payout)
	return nil
}

func (m *MockYieldPayoutRepository) Exists(ctx context.Context, depositID string, payoutDate time.Time, kind domain.PayoutKind) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, depositID, payoutDate, kind)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payouts {
		if p.DepositID == depositID && p.Kind == kind && p.PayoutDate.Equal(payoutDate) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockYieldPayoutRepository) ListByDate(ctx context.Context, payoutDate time.Time, kind domain.PayoutKind) ([]*domain.YieldPayout, error) {
	if m.ListByDateFunc != nil {
		return m.ListByDateFunc(ctx, payoutDate, kind)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.YieldPayout
	for _, p := range m.payouts {
		if p.Kind == kind && p.PayoutDate.Equal(payoutDate) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockYieldPayoutRepository) ListByDeposit(ctx context.Context, depositID string, limit, offset int) ([]*domain.YieldPayout, error) {
	if m.ListByDepositFunc != nil {
		return m.ListByDepositFunc(ctx, depositID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.YieldPayout
	for _, p := range m.payouts {
		if p.DepositID == depositID {
			out = append(out, p)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockYieldPayoutRepository) SumForDeposit(ctx context.Context, depositID string, kind domain.PayoutKind, from, to time.Time) (decimal.Decimal, error) {
	if m.SumForDepositFunc != nil {
		return m.SumForDepositFunc(ctx, depositID, kind, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, p := range m.payouts {
		if p.DepositID != depositID || p.Kind != kind {
			continue
		}
		if p.PayoutDate.After(from) && !p.PayoutDate.After(to) {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc   func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
	ListFunc     func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.AuditLog, len(m.logs))
	copy(out, m.logs)
	return out
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return m.Logs(), nil
}
