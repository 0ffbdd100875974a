package mysql

import (
	"errors"
	"fmt"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/picshare/domain"
)

// ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// isDuplicateKey 判断是否违反唯一索引
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysqlDriver.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}

// translateErr 把 gorm 错误转换为 domain 错误
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, domain.ErrStorage):
		return err
	default:
		return storageErr(err)
	}
}
