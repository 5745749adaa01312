// internal/console/router.go
//
// 本檔負責選單路由：選項編號 → handler 的對應表，以及主迴圈。
//   - handler.go 定義「如何處理每個選項」
//   - router.go 定義「輸入如何被導向」，並在此統一記錄 span、計數與日誌
//   - response.go 定義「結果如何呈現」
package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// route 為選單上的一個選項。
type route struct {
	key    int
	name   string
	label  string
	handle func(context.Context) error
}

// routes 建立選單對應表；順序即顯示順序。
func (c *Console) routes() []route {
	return []route{
		{1, "create", "Create Account", c.create},
		{2, "deposit", "Deposit", c.deposit},
		{3, "withdraw", "Withdraw", c.withdraw},
		{4, "balance", "Check Balance", c.balance},
		{5, "exit", "Exit", c.exit},
	}
}

// Run 執行選單迴圈，直到選擇離開或輸入結束；兩者皆回傳 nil。
// 只有讀取輸入失敗時回傳錯誤；過長的輸入行視為使用者輸入錯誤，迴圈照常繼續。
func (c *Console) Run(ctx context.Context) error {
	rs := c.routes()
	for {
		c.printMenu(rs)
		tok, err := c.readToken(fmt.Sprintf("Enter your choice (1-%d): ", len(rs)))
		if errors.Is(err, errInputClosed) {
			return c.readErr
		}
		r, ok := lookup(rs, tok)
		if err != nil || !ok {
			c.writeLine("Invalid choice. Please try again.")
			continue
		}
		switch err := c.dispatch(ctx, r); {
		case errors.Is(err, errExit):
			return nil
		case errors.Is(err, errInputClosed):
			return c.readErr
		}
	}
}

func lookup(rs []route, tok string) (route, bool) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return route{}, false
	}
	for _, r := range rs {
		if r.key == n {
			return r, true
		}
	}
	return route{}, false
}

// dispatch 於 span 內執行 handler。
// 使用者輸入錯誤在此轉成提示訊息並吞掉；只有 errExit 與 errInputClosed 往上傳。
func (c *Console) dispatch(ctx context.Context, r route) error {
	ctx, span := c.tracer.Start(ctx, "menu."+r.name,
		trace.WithAttributes(attribute.String("ledger.op", r.name)))
	defer span.End()

	err := r.handle(ctx)
	switch {
	case err == nil, errors.Is(err, errExit):
		c.record(ctx, r.name, "ok")
		c.logger.Debug("operation completed", "op", r.name)
		return err
	case errors.Is(err, errInputClosed):
		span.SetStatus(codes.Error, err.Error())
		c.record(ctx, r.name, "aborted")
		return err
	default:
		kind := outcome(err)
		c.writeErr(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		c.record(ctx, r.name, kind)
		c.logger.Info("operation rejected", "op", r.name, "outcome", kind, "error", err)
		return nil
	}
}

func (c *Console) record(ctx context.Context, op, outcome string) {
	c.ops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
}
