package picture_test

import (
	"context"
	"testing"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/repository/mysql"
	"github.com/Guyuepp/picshare/internal/usecase/picture"
	"github.com/Guyuepp/picshare/internal/usecase/score"
)

var likeColumns = []string{"id", "account_id", "picture_id", "is_like", "created_at"}

func newMySQLService(t *testing.T) (*picture.Service, sqlmock.Sqlmock, *mockRankWorker) {
	t.Helper()
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	bloom := new(mockBloom)
	bloom.On("Exists", mock.Anything, pictureID).Return(true, nil)
	worker := new(mockRankWorker)
	worker.On("Send", mock.Anything, mock.Anything).Return()
	account := new(mockAccountRepo)
	account.On("GetByID", mock.Anything, ownerID).Return(domain.Account{ID: ownerID, Nickname: "owner"}, nil)

	svc := picture.NewService(mysql.NewPictureDBRepository(db), new(mockTagRepo), account, bloom, score.Default(), worker)
	return svc, sqlMock, worker
}

func expectLockedPicture(sqlMock sqlmock.Sqlmock, likes *sqlmock.Rows) {
	sqlMock.ExpectQuery("SELECT \\* FROM `likes` WHERE picture_id = \\?").
		WithArgs(pictureID).
		WillReturnRows(likes)
	sqlMock.ExpectQuery("SELECT \\* FROM `pictures` WHERE id = \\?.*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "name", "url", "popularity_score"}).
			AddRow(pictureID, ownerID, "sunset", "http://img/1.webp", 0))
	sqlMock.ExpectQuery("SELECT `tags`.`id`,`tags`.`value` FROM `tags` JOIN picture_tags").
		WillReturnRows(sqlmock.NewRows([]string{"id", "value"}).
			AddRow(5, "sky").
			AddRow(6, "sea"))
}

func TestLikeStatementOrderInTransaction(t *testing.T) {
	svc, sqlMock, worker := newMySQLService(t)

	sqlMock.ExpectBegin()
	expectLockedPicture(sqlMock, sqlmock.NewRows(likeColumns))
	sqlMock.ExpectExec("INSERT INTO `likes`").WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectExec("INSERT INTO `account_liked_tags`.*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec("INSERT INTO `account_liked_tags`.*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectQuery("SELECT \\* FROM `likes` WHERE picture_id = \\?.*FOR SHARE").
		WillReturnRows(sqlmock.NewRows(likeColumns).AddRow(1, accountA, pictureID, true, time.Now()))
	sqlMock.ExpectExec("UPDATE `pictures` SET `popularity_score`=\\? WHERE id = \\?").
		WithArgs(int64(10), pictureID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	pic, err := svc.Like(context.TODO(), pictureID, accountA)
	require.NoError(t, err)
	assert.Equal(t, domain.LikeStateLiked, pic.VoteOf(accountA))
	assert.Equal(t, int64(10), pic.PopularityScore)
	assert.Equal(t, []int64{5, 6}, pic.TagIDs())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	worker.AssertCalled(t, "Send", pictureID, int64(10))
}

func TestLikeDuplicateInsertInTransaction(t *testing.T) {
	svc, sqlMock, _ := newMySQLService(t)

	// 加锁前的快照里没有这票, 拿到锁时并发的同一请求已经提交
	sqlMock.ExpectBegin()
	expectLockedPicture(sqlMock, sqlmock.NewRows(likeColumns))
	sqlMock.ExpectExec("INSERT INTO `likes`").
		WillReturnError(&mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry '2-1' for key 'uk_account_picture'"})
	sqlMock.ExpectQuery("SELECT \\* FROM `likes` WHERE picture_id = \\?.*FOR SHARE").
		WillReturnRows(sqlmock.NewRows(likeColumns).AddRow(1, accountA, pictureID, true, time.Now()))
	sqlMock.ExpectExec("UPDATE `pictures` SET `popularity_score`=\\? WHERE id = \\?").
		WithArgs(int64(10), pictureID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	pic, err := svc.Like(context.TODO(), pictureID, accountA)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pic.LikeCount())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDisLikeStatementOrderInTransaction(t *testing.T) {
	svc, sqlMock, _ := newMySQLService(t)

	sqlMock.ExpectBegin()
	expectLockedPicture(sqlMock, sqlmock.NewRows(likeColumns))
	sqlMock.ExpectExec("INSERT INTO `likes`").WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectQuery("SELECT \\* FROM `likes` WHERE picture_id = \\?.*FOR SHARE").
		WillReturnRows(sqlmock.NewRows(likeColumns).AddRow(1, accountB, pictureID, false, time.Now()))
	sqlMock.ExpectExec("UPDATE `pictures` SET `popularity_score`=\\? WHERE id = \\?").
		WithArgs(int64(-5), pictureID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	pic, err := svc.DisLike(context.TODO(), pictureID, accountB)
	require.NoError(t, err)
	assert.Equal(t, domain.LikeStateDisliked, pic.VoteOf(accountB))
	assert.Equal(t, []int64{5, 6}, pic.TagIDs())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
