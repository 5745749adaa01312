// cmd/ledger/main.go

// 互動式帳本：於標準輸入輸出提供建立帳戶、存款、提款、查詢餘額的文字選單。
// 此檔案負責載入設定、建立 logger 與遙測，並組裝 ledger 與 console 模組。
// 帳本只存在於記憶體，程式結束即消失。

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"accountledger/internal/config"
	"accountledger/internal/console"
	"accountledger/internal/ledger"
	"accountledger/internal/telemetry"
)

func main() {
	os.Exit(run(os.Getenv, os.Stdin, os.Stdout, os.Stderr))
}

// run 組裝並執行選單，回傳結束碼：
// 選擇離開或輸入結束為 0；設定錯誤、遙測初始化失敗或讀取輸入失敗為 1。
// 所有 defer（遙測 flush）在回傳前執行完畢。
func run(getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.LoadEnv(getenv)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}

	// 診斷輸出一律寫到 stderr，避免與選單混在一起
	logger := cfg.NewLogger(stderr)

	ctx := context.Background()
	tel, err := telemetry.Setup(ctx, cfg.Telemetry, stderr, logger)
	if err != nil {
		logger.Error("telemetry setup failed", "error", err)
		return 1
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(sctx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	// 帳本由 main 擁有，整個程序只有一份
	l := ledger.New(ledger.MaxAccounts)

	c := console.New(l, stdin, stdout,
		console.WithLogger(logger),
		console.WithTracerProvider(tel.TracerProvider()),
		console.WithMeterProvider(tel.MeterProvider()),
	)
	logger.Debug("ledger ready", "capacity", l.Cap())

	if err := c.Run(ctx); err != nil {
		logger.Error("read input", "error", err)
		return 1
	}
	return 0
}
