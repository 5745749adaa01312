// internal/console/handler.go
//
// Package console
// ─────────────────────────────────────────────
// 提供互動式文字選單，作為 ledger 模組的應用層 (Application Layer)。
// 每個 handler 僅負責：
//  1. 讀取並解析使用者輸入
//  2. 呼叫 ledger 層執行商業邏輯
//  3. 輸出成功訊息；失敗時回傳錯誤，由 router 統一轉成提示訊息
//
// ledger 不依賴任何 I/O，console 依賴 ledger。
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"accountledger/internal/ledger"
)

const instrumentationName = "accountledger/internal/console"

var (
	// errInputClosed 代表標準輸入已結束，選單迴圈視同離開。
	errInputClosed = errors.New("input closed")

	// errExit 由離開選項回傳，讓 Run 結束迴圈。
	errExit = errors.New("exit requested")

	// errInvalidAmount 代表金額無法解析、超出範圍或超過兩位小數。
	errInvalidAmount = errors.New("invalid amount")

	// errLineTooLong 代表單行輸入超過 maxLineBytes；該行其餘內容已被略過。
	errLineTooLong = errors.New("input line too long")
)

const (
	// maxLineBytes 為單行輸入上限。
	maxLineBytes = 1024

	// 金額的位數限制，在任何運算之前檢查，避免巨大指數造成的重新縮放。
	maxAmountLen      = 32
	minAmountExponent = -8
	maxAmountExponent = 12
	amountPlaces      = 2
)

// Console 為選單層核心結構：
// - Ledger：注入帳本（由 main 擁有，整個程序生命週期只有一份）。
// - in/out：輸入輸出，測試時可替換為記憶體緩衝。
// - readErr：非 EOF 的讀取錯誤，由 Run 回傳。
// - logger/tracer/ops：可觀測性，未設定時皆為 noop。
type Console struct {
	Ledger  *ledger.Ledger
	in      *bufio.Reader
	readErr error
	out     io.Writer
	logger  *slog.Logger
	tracer  trace.Tracer
	ops     metric.Int64Counter
}

type settings struct {
	logger *slog.Logger
	tp     trace.TracerProvider
	mp     metric.MeterProvider
}

// Option 調整 Console 的可觀測性依賴。
type Option func(*settings)

// WithLogger sets the structured logger for operation outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithTracerProvider sets the provider used to start one span per menu action.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *settings) { s.tp = tp }
}

// WithMeterProvider sets the provider for the ledger.operations counter.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *settings) { s.mp = mp }
}

// New 建立選單；in 以行為單位讀取。
func New(l *ledger.Ledger, in io.Reader, out io.Writer, opts ...Option) *Console {
	s := settings{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tp:     tracenoop.NewTracerProvider(),
		mp:     metricnoop.NewMeterProvider(),
	}
	for _, o := range opts {
		o(&s)
	}

	ops, err := s.mp.Meter(instrumentationName).Int64Counter("ledger.operations",
		metric.WithDescription("Menu actions by operation and outcome."),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		s.logger.Warn("create operations counter", "error", err)
		ops = metricnoop.Int64Counter{}
	}

	return &Console{
		Ledger: l,
		in:     bufio.NewReader(in),
		out:    out,
		logger: s.logger,
		tracer: s.tp.Tracer(instrumentationName),
		ops:    ops,
	}
}

// create 處理選項 1：建立帳戶。
// 帳本已滿時不進入提示；帳號重複或空白時重新詢問帳號。
func (c *Console) create(ctx context.Context) error {
	if c.Ledger.Full() {
		return ledger.ErrFull
	}
	var number string
	for {
		n, err := c.readToken("Enter account number: ")
		if err != nil {
			return err
		}
		if !c.Ledger.Exists(n) {
			number = n
			break
		}
		c.writeErr(ledger.ErrDuplicate)
	}
	annotate(ctx, number)

	holder, err := c.readLine("Enter account holder name: ")
	if err != nil {
		return err
	}
	if _, err := c.Ledger.Create(number, holder); err != nil {
		return err
	}
	c.writeLine("Account created successfully!")
	return nil
}

// deposit 處理選項 2：存款。帳號不存在時不詢問金額。
func (c *Console) deposit(ctx context.Context) error {
	number, err := c.readAccount(ctx)
	if err != nil {
		return err
	}
	amt, err := c.readAmount("Enter deposit amount: ")
	if err != nil {
		return err
	}
	bal, err := c.Ledger.Deposit(number, amt)
	if err != nil {
		return err
	}
	c.writef("Deposit successful. Current balance: %s\n", money(bal))
	return nil
}

// withdraw 處理選項 3：提款。
func (c *Console) withdraw(ctx context.Context) error {
	number, err := c.readAccount(ctx)
	if err != nil {
		return err
	}
	amt, err := c.readAmount("Enter withdrawal amount: ")
	if err != nil {
		return err
	}
	bal, err := c.Ledger.Withdraw(number, amt)
	if err != nil {
		return err
	}
	c.writef("Withdrawal successful. Remaining balance: %s\n", money(bal))
	return nil
}

// balance 處理選項 4：唯讀查詢餘額。
func (c *Console) balance(ctx context.Context) error {
	number, err := c.readToken("Enter account number: ")
	if err != nil {
		return err
	}
	annotate(ctx, number)
	bal, err := c.Ledger.Balance(number)
	if err != nil {
		return err
	}
	c.writef("Current balance: %s\n", money(bal))
	return nil
}

func (c *Console) exit(context.Context) error {
	c.writeLine("Thank you for using our banking system!")
	return errExit
}

// readAccount 讀取帳號並確認存在，讓未知帳號在詢問金額前就被回報。
func (c *Console) readAccount(ctx context.Context) (string, error) {
	number, err := c.readToken("Enter account number: ")
	if err != nil {
		return "", err
	}
	annotate(ctx, number)
	if !c.Ledger.Exists(number) {
		return "", ledger.ErrNotFound
	}
	return number, nil
}

// readAmount 解析金額；長度、指數與小數位數皆在呼叫 ledger 之前檢查。
func (c *Console) readAmount(prompt string) (decimal.Decimal, error) {
	tok, err := c.readToken(prompt)
	if err != nil {
		return decimal.Zero, err
	}
	if len(tok) > maxAmountLen {
		return decimal.Zero, fmt.Errorf("%w: %d characters", errInvalidAmount, len(tok))
	}
	amt, err := decimal.NewFromString(tok)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errInvalidAmount, tok)
	}
	if e := amt.Exponent(); e < minAmountExponent || e > maxAmountExponent {
		return decimal.Zero, fmt.Errorf("%w: %q out of range", errInvalidAmount, tok)
	}
	if !amt.Equal(amt.Truncate(amountPlaces)) {
		return decimal.Zero, fmt.Errorf("%w: %q has more than %d decimal places", errInvalidAmount, tok, amountPlaces)
	}
	return amt, nil
}

// readToken 回傳下一個非空白行的第一個欄位；空白行會重新提示。
func (c *Console) readToken(prompt string) (string, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return "", err
		}
		if f := strings.Fields(line); len(f) > 0 {
			return f[0], nil
		}
	}
}

// readLine 讀取一行（不含換行）。超過 maxLineBytes 的行會讀完並丟棄，回傳 errLineTooLong。
// 輸入結束或讀取失敗時回傳 errInputClosed；後者的錯誤保留在 readErr。
func (c *Console) readLine(prompt string) (string, error) {
	c.write(prompt)
	var (
		buf     []byte
		tooLong bool
		read    int
	)
	for {
		chunk, err := c.in.ReadSlice('\n')
		read += len(chunk)
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes+2 {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			c.readErr = err
			return "", errInputClosed
		}
		if err != nil && read == 0 {
			return "", errInputClosed
		}
		break
	}
	if tooLong {
		return "", errLineTooLong
	}
	line := strings.TrimRight(string(buf), "\r\n")
	if len(line) > maxLineBytes {
		return "", errLineTooLong
	}
	return line, nil
}

func annotate(ctx context.Context, number string) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("ledger.account", number))
}
