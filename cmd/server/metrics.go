package main

import (
	"fmt"
	"io"

	"antcolony.ai/internal/persistence/indexdb"
	"antcolony.ai/internal/sim/world"
)

// writeMetrics renders the world metrics in the Prometheus text exposition format.
func writeMetrics(out io.Writer, worldID string, m world.WorldMetrics, idx indexdb.Stats) {
	fmt.Fprintf(out, "# HELP antcolony_world_tick Current world tick.\n")
	fmt.Fprintf(out, "# TYPE antcolony_world_tick gauge\n")
	fmt.Fprintf(out, "antcolony_world_tick{world=%q} %d\n", worldID, m.Tick)

	fmt.Fprintf(out, "# HELP antcolony_world_population Live entities by kind.\n")
	fmt.Fprintf(out, "# TYPE antcolony_world_population gauge\n")
	fmt.Fprintf(out, "antcolony_world_population{world=%q,kind=%q} %d\n", worldID, "worker", m.Population.Workers)
	fmt.Fprintf(out, "antcolony_world_population{world=%q,kind=%q} %d\n", worldID, "scout", m.Population.Scouts)
	fmt.Fprintf(out, "antcolony_world_population{world=%q,kind=%q} %d\n", worldID, "base", m.Population.Bases)
	fmt.Fprintf(out, "antcolony_world_population{world=%q,kind=%q} %d\n", worldID, "resource", m.Population.Resources)
	fmt.Fprintf(out, "antcolony_world_population{world=%q,kind=%q} %d\n", worldID, "trail", m.Population.Trails)

	fmt.Fprintf(out, "# HELP antcolony_world_stock Food deposited into all bases.\n")
	fmt.Fprintf(out, "# TYPE antcolony_world_stock gauge\n")
	fmt.Fprintf(out, "antcolony_world_stock{world=%q} %.3f\n", worldID, m.Stock)

	fmt.Fprintf(out, "# HELP antcolony_world_observers Connected observer sessions.\n")
	fmt.Fprintf(out, "# TYPE antcolony_world_observers gauge\n")
	fmt.Fprintf(out, "antcolony_world_observers{world=%q} %d\n", worldID, m.Observers)

	fmt.Fprintf(out, "# HELP antcolony_world_queue_depth Channel backlog depth.\n")
	fmt.Fprintf(out, "# TYPE antcolony_world_queue_depth gauge\n")
	fmt.Fprintf(out, "antcolony_world_queue_depth{world=%q,queue=%q} %d\n", worldID, "create", m.QueueDepths.Create)
	fmt.Fprintf(out, "antcolony_world_queue_depth{world=%q,queue=%q} %d\n", worldID, "observer_join", m.QueueDepths.ObserverJoin)
	fmt.Fprintf(out, "antcolony_world_queue_depth{world=%q,queue=%q} %d\n", worldID, "observer_leave", m.QueueDepths.ObserverLeave)

	fmt.Fprintf(out, "# HELP antcolony_world_step_ms Last tick step duration in milliseconds.\n")
	fmt.Fprintf(out, "# TYPE antcolony_world_step_ms gauge\n")
	fmt.Fprintf(out, "antcolony_world_step_ms{world=%q} %.3f\n", worldID, m.StepMS)

	fmt.Fprintf(out, "# HELP antcolony_stats_window Rolling window stats.\n")
	fmt.Fprintf(out, "# TYPE antcolony_stats_window gauge\n")
	fmt.Fprintf(out, "antcolony_stats_window{world=%q,metric=%q} %d\n", worldID, "deposits", m.StatsWindow.Deposits)
	fmt.Fprintf(out, "antcolony_stats_window{world=%q,metric=%q} %.3f\n", worldID, "food_deposited", m.StatsWindow.FoodDeposited)
	fmt.Fprintf(out, "antcolony_stats_window{world=%q,metric=%q} %.3f\n", worldID, "food_drawn", m.StatsWindow.FoodDrawn)
	fmt.Fprintf(out, "antcolony_stats_window{world=%q,metric=%q} %d\n", worldID, "deaths", m.StatsWindow.Deaths)
	fmt.Fprintf(out, "antcolony_stats_window{world=%q,metric=%q} %d\n", worldID, "trails_created", m.StatsWindow.TrailsCreated)
	fmt.Fprintf(out, "antcolony_stats_window{world=%q,metric=%q} %d\n", worldID, "trails_expired", m.StatsWindow.TrailsExpired)

	fmt.Fprintf(out, "# HELP antcolony_stats_window_ticks Rolling window size in ticks.\n")
	fmt.Fprintf(out, "# TYPE antcolony_stats_window_ticks gauge\n")
	fmt.Fprintf(out, "antcolony_stats_window_ticks{world=%q} %d\n", worldID, m.StatsWindowTicks)

	if idx.QueueCapacity == 0 {
		return
	}
	fmt.Fprintf(out, "# HELP antcolony_index_queue_depth Current index writer queue depth.\n")
	fmt.Fprintf(out, "# TYPE antcolony_index_queue_depth gauge\n")
	fmt.Fprintf(out, "antcolony_index_queue_depth %d\n", idx.QueueDepth)

	fmt.Fprintf(out, "# HELP antcolony_index_queue_capacity Index writer queue capacity.\n")
	fmt.Fprintf(out, "# TYPE antcolony_index_queue_capacity gauge\n")
	fmt.Fprintf(out, "antcolony_index_queue_capacity %d\n", idx.QueueCapacity)

	fmt.Fprintf(out, "# HELP antcolony_index_dropped_total Tick entries dropped because the index queue was full.\n")
	fmt.Fprintf(out, "# TYPE antcolony_index_dropped_total counter\n")
	fmt.Fprintf(out, "antcolony_index_dropped_total %d\n", idx.DropTickTotal)
}
