package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tradsys-sim/matching-engine/internal/book"
	"github.com/tradsys-sim/matching-engine/internal/bus"
	"github.com/tradsys-sim/matching-engine/internal/cache"
	"github.com/tradsys-sim/matching-engine/internal/clock"
	"github.com/tradsys-sim/matching-engine/internal/config"
	"github.com/tradsys-sim/matching-engine/internal/fillmodel"
	"github.com/tradsys-sim/matching-engine/internal/matchingengine"
	"github.com/tradsys-sim/matching-engine/internal/types"
)

// NewDemoCmd runs the L2-market-walk scenario end to end and prints every
// event the engine emits, demonstrating the full stack wired together.
func NewDemoCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted L2 market-walk scenario and print the emitted events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML engine config overlay (defaults to config.Default())")
	return cmd
}

func runDemo(cmd *cobra.Command, configPath string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	instrument := types.Instrument{
		Id:             "ETHUSDT-PERP.BINANCE",
		PricePrecision: 2,
		SizePrecision:  3,
		QuoteCurrency:  "USDT",
		TickSize:       demoDecimal("0.01"),
	}

	recorder := bus.NewRecordingHandler()
	b := bus.New()
	b.Subscribe(bus.EndpointExecEngineProcess, recorder)

	engine := matchingengine.New(
		instrument,
		1,
		fillmodel.FullFill{},
		fillmodel.NoFee{},
		types.BookTypeL2MBP,
		types.OmsTypeNetting,
		types.AccountTypeMargin,
		clock.NewLive(),
		b,
		cache.New(),
		cfg,
		logger,
	)

	engine.ApplyDelta(book.Delta{
		InstrumentId: instrument.Id, Action: types.BookActionAdd,
		Side: types.OrderSideSell, Price: demoDecimal("1500.00"), Quantity: demoDecimal("1.000"),
	})
	engine.ApplyDelta(book.Delta{
		InstrumentId: instrument.Id, Action: types.BookActionAdd,
		Side: types.OrderSideSell, Price: demoDecimal("1510.00"), Quantity: demoDecimal("1.000"),
	})

	order := &types.Order{
		ClientOrderId: "O-DEMO-1",
		InstrumentId:  instrument.Id,
		TraderId:      "TRADER-001",
		StrategyId:    "STRAT-001",
		AccountId:     "ACC-001",
		Side:          types.OrderSideBuy,
		Type:          types.OrderTypeMarket,
		Quantity:      demoDecimal("2.000"),
		TimeInForce:   types.TimeInForceGTC,
		Status:        types.OrderStatusInitialized,
	}
	engine.Submit(order)

	for _, ev := range recorder.Events() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s cid=%-12s last_qty=%-10s last_px=%-10s reason=%s\n",
			ev.Kind, ev.ClientOrderId, ev.LastQty.String(), ev.LastPx.String(), ev.Reason)
	}
	return nil
}

func demoDecimal(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}
