package modkit

import (
	"akkadian/internal/modkit/repokit"
	"akkadian/internal/platform/config"
	"akkadian/internal/platform/logger"
	"akkadian/internal/platform/store"
)

// Deps is what api.Mount hands every module. PG and CH are nil when the
// backend is disabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
