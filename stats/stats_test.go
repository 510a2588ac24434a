package stats_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/kncube/flit"
	"github.com/sarchlab/kncube/stats"
)

var _ = Describe("Collect", func() {
	window := stats.Window{Warmup: 100, Measurement: 50}

	It("keeps received entries whose received time falls inside the window, regardless of sent time", func() {
		entries := []flit.InfoEntry{
			{Status: flit.Received, SentTime: 110, ReceivedTime: 120},
			{Status: flit.Received, SentTime: 90, ReceivedTime: 120},
			{Status: flit.Received, SentTime: 110, ReceivedTime: 200},
			{Status: flit.Sent, SentTime: 110, ReceivedTime: 0},
		}
		kept := stats.Collect(entries, window)
		Expect(kept).To(HaveLen(2))
		Expect(kept[0].SentTime).To(Equal(110.0))
		Expect(kept[1].SentTime).To(Equal(90.0))
	})
})

var _ = Describe("CollectLatency", func() {
	window := stats.Window{Warmup: 100, Measurement: 50}

	It("keeps received entries whose sent time falls inside the window, regardless of received time", func() {
		entries := []flit.InfoEntry{
			{Status: flit.Received, SentTime: 110, ReceivedTime: 120},
			{Status: flit.Received, SentTime: 90, ReceivedTime: 120},
			{Status: flit.Received, SentTime: 149, ReceivedTime: 200},
			{Status: flit.Sent, SentTime: 110, ReceivedTime: 0},
		}
		kept := stats.CollectLatency(entries, window)
		Expect(kept).To(HaveLen(2))
		Expect(kept[0].ReceivedTime).To(Equal(120.0))
		Expect(kept[1].ReceivedTime).To(Equal(200.0))
	})
})

var _ = Describe("CollectSent", func() {
	window := stats.Window{Warmup: 100, Measurement: 50}

	It("keeps sent and received entries whose sent time falls in the window", func() {
		entries := []flit.InfoEntry{
			{Status: flit.Sent, SentTime: 120},
			{Status: flit.Received, SentTime: 130, ReceivedTime: 140},
			{Status: flit.Sent, SentTime: 90},
			{Status: flit.Valid, SentTime: 0},
		}
		kept := stats.CollectSent(entries, window)
		Expect(kept).To(HaveLen(2))
	})
})

var _ = Describe("Calculate", func() {
	It("computes throughput, demand and average latency", func() {
		received := []flit.InfoEntry{
			{PacketSize: 4, SentTime: 100, ReceivedTime: 105},
			{PacketSize: 4, SentTime: 100, ReceivedTime: 103},
		}
		latencyReceived := received
		sent := received

		r := stats.Calculate(received, latencyReceived, sent, stats.Window{Warmup: 0, Measurement: 100}, 4)

		Expect(r.Throughput).To(BeNumerically("~", 8.0/400.0, 1e-9))
		Expect(r.Demand).To(Equal(r.Throughput))
		Expect(r.Latency).To(BeNumerically("~", ((105-100-1)+(103-100-1))/2.0, 1e-9))
	})

	It("reports zero throughput and demand when the measurement window is empty", func() {
		r := stats.Calculate(nil, nil, nil, stats.Window{Warmup: 0, Measurement: 0}, 4)
		Expect(r.Throughput).To(Equal(0.0))
		Expect(r.Demand).To(Equal(0.0))
		Expect(r.Latency).To(Equal(0.0))
	})

	It("still counts a packet's full latency even when it arrives after the window closes", func() {
		// Sent at cycle 95 (inside [0, 100)), received at cycle 110 (after the
		// window closes) — the original still accumulates this packet's
		// latency against the sent-side denominator.
		received := []flit.InfoEntry{{PacketSize: 4, SentTime: 95, ReceivedTime: 110}}
		sent := received

		r := stats.Calculate(nil, received, sent, stats.Window{Warmup: 0, Measurement: 100}, 4)
		Expect(r.Latency).To(BeNumerically("~", 110-95-1, 1e-9))
	})
})
