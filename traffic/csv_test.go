package traffic_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/kncube/flit"
	"github.com/sarchlab/kncube/traffic"
)

var _ = Describe("NewRunDir", func() {
	It("creates a fresh, unique directory under base", func() {
		base, err := os.MkdirTemp("", "kncube-runs")
		Expect(err).ToNot(HaveOccurred())

		dirA, err := traffic.NewRunDir(base)
		Expect(err).ToNot(HaveOccurred())
		dirB, err := traffic.NewRunDir(base)
		Expect(err).ToNot(HaveOccurred())

		Expect(dirA).ToNot(Equal(dirB))
		Expect(dirA).To(BeADirectory())
		Expect(dirB).To(BeADirectory())
	})
})

var _ = Describe("WriteCSV and ReadInfo", func() {
	It("round-trips info entries through the two-file CSV contract", func() {
		dir, err := os.MkdirTemp("", "kncube-csv")
		Expect(err).ToNot(HaveOccurred())

		info := map[int][]flit.InfoEntry{
			-1: {
				{PacketID: 0, Source: -1, Destination: -2, PacketSize: 4, Status: flit.Received, SentTime: 5, ReceivedTime: 10},
			},
			-2: {
				{PacketID: 0, Source: -2, Destination: -1, PacketSize: 4, Status: flit.Sent, SentTime: 6},
			},
		}
		data := map[int][][]float64{
			-1: {{1, 2, 3, 4}},
			-2: {{5, 6, 7, 8}},
		}

		Expect(traffic.WriteCSV(dir, info, data)).To(Succeed())

		got, err := traffic.ReadInfo(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(HaveLen(2))
		Expect(got[0].Source).To(Equal(-1))
		Expect(got[0].Status).To(Equal(flit.Received))
		Expect(got[0].ReceivedTime).To(Equal(10.0))
		Expect(got[1].Source).To(Equal(-2))
		Expect(got[1].Status).To(Equal(flit.Sent))
	})
})
