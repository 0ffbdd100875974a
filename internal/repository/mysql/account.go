package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/repository/mysql/model"
)

type accountRepository struct {
	DB *gorm.DB
}

var _ domain.AccountRepository = (*accountRepository)(nil)

// NewAccountRepository will create an implementation of domain.AccountRepository
func NewAccountRepository(db *gorm.DB) *accountRepository {
	return &accountRepository{
		DB: db,
	}
}

func (m *accountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	var account model.Account
	if err := m.DB.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return domain.Account{}, translateErr(err)
	}

	return account.ToDomain(), nil
}

func (m *accountRepository) Insert(ctx context.Context, a *domain.Account) error {
	accountModel := model.NewAccountFromDomain(a)

	result := m.DB.WithContext(ctx).Create(accountModel)
	if isDuplicateKey(result.Error) {
		return domain.ErrConflict
	}
	if result.Error != nil {
		return storageErr(result.Error)
	}

	a.ID = accountModel.ID
	a.CreatedAt = accountModel.CreatedAt
	a.UpdatedAt = accountModel.UpdatedAt

	return nil
}

func (m *accountRepository) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	var account model.Account
	if err := m.DB.WithContext(ctx).First(&account, "username = ?", username).Error; err != nil {
		return domain.Account{}, translateErr(err)
	}

	return account.ToDomain(), nil
}

func (m *accountRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var accounts []model.Account
	err := m.DB.WithContext(ctx).Model(&model.Account{}).Where("id in ?", ids).Find(&accounts).Error
	if err != nil {
		return nil, storageErr(err)
	}
	res := make([]domain.Account, len(accounts))
	for i := range accounts {
		res[i] = accounts[i].ToDomain()
	}
	return res, nil
}
