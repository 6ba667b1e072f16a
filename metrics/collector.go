// Package metrics provides Prometheus metric collection for the M5250 router.
package metrics

import (
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/m5250-dashboard/exporter/router"
)

// StatusSource is the subset of the router client the collector needs.
type StatusSource interface {
	DeviceStatus() (*router.DeviceStatus, error)
	LinkStatus() (*router.LinkStatus, error)
}

// Collector implements prometheus.Collector for M5250 router telemetry.
// Each Collect performs one fetch of both status pages; a failed fetch is
// reported through m5250_scrape_success and logged, never retried here.
type Collector struct {
	source StatusSource
	logger zerolog.Logger

	// The router client is not safe for concurrent callers.
	mu sync.Mutex

	// Device status metrics
	batteryPercentDesc  *prometheus.Desc
	batteryChargingDesc *prometheus.Desc
	batteryPresentDesc  *prometheus.Desc
	signalPercentDesc   *prometheus.Desc
	wanUpDesc           *prometheus.Desc
	smsUnreadDesc       *prometheus.Desc

	// Link status metrics
	wifiClientsDesc *prometheus.Desc
	linkStateDesc   *prometheus.Desc
	simStateDesc    *prometheus.Desc
	rxBytesDesc     *prometheus.Desc
	txBytesDesc     *prometheus.Desc
	totalBytesDesc  *prometheus.Desc
	sessionSecsDesc *prometheus.Desc
	totalSecsDesc   *prometheus.Desc

	// Scrape metrics
	scrapeSuccessDesc  *prometheus.Desc
	scrapeDurationDesc *prometheus.Desc
}

// NewCollector creates a new Collector reading from the given source.
func NewCollector(source StatusSource, logger zerolog.Logger) *Collector {
	return &Collector{
		source: source,
		logger: logger,

		// Device status metrics
		batteryPercentDesc: prometheus.NewDesc(
			"m5250_battery_percent",
			"Battery charge level in percent (absent while charging or without battery)",
			nil,
			nil,
		),
		batteryChargingDesc: prometheus.NewDesc(
			"m5250_battery_charging",
			"Whether the battery is charging",
			nil,
			nil,
		),
		batteryPresentDesc: prometheus.NewDesc(
			"m5250_battery_present",
			"Whether a battery is installed",
			nil,
			nil,
		),
		signalPercentDesc: prometheus.NewDesc(
			"m5250_signal_percent",
			"Cellular signal strength in percent",
			nil,
			nil,
		),
		wanUpDesc: prometheus.NewDesc(
			"m5250_wan_up",
			"Whether the WAN link is up",
			nil,
			nil,
		),
		smsUnreadDesc: prometheus.NewDesc(
			"m5250_sms_unread",
			"Whether unread SMS messages are waiting",
			nil,
			nil,
		),

		// Link status metrics
		wifiClientsDesc: prometheus.NewDesc(
			"m5250_wifi_clients",
			"Number of associated WiFi clients",
			[]string{"ssid"},
			nil,
		),
		linkStateDesc: prometheus.NewDesc(
			"m5250_wan_link_state",
			"WAN link state (0=disconnected, 1=connecting, 2=disconnecting, 3=connected)",
			nil,
			nil,
		),
		simStateDesc: prometheus.NewDesc(
			"m5250_sim_state",
			"SIM state (0=invalid, 1=ready, 2=pin required, 3=puk required, 4=pin verified, -1=unknown)",
			nil,
			nil,
		),
		rxBytesDesc: prometheus.NewDesc(
			"m5250_session_rx_bytes",
			"Bytes received in the current WAN session",
			nil,
			nil,
		),
		txBytesDesc: prometheus.NewDesc(
			"m5250_session_tx_bytes",
			"Bytes sent in the current WAN session",
			nil,
			nil,
		),
		totalBytesDesc: prometheus.NewDesc(
			"m5250_total_bytes",
			"Cumulative WAN data usage in bytes",
			nil,
			nil,
		),
		sessionSecsDesc: prometheus.NewDesc(
			"m5250_session_duration_seconds",
			"Duration of the current WAN session",
			nil,
			nil,
		),
		totalSecsDesc: prometheus.NewDesc(
			"m5250_total_duration_seconds",
			"Cumulative WAN connection time",
			nil,
			nil,
		),

		// Scrape metrics
		scrapeSuccessDesc: prometheus.NewDesc(
			"m5250_scrape_success",
			"Whether the last scrape was successful",
			nil,
			nil,
		),
		scrapeDurationDesc: prometheus.NewDesc(
			"m5250_scrape_duration_seconds",
			"Duration of the last scrape in seconds",
			nil,
			nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.batteryPercentDesc
	ch <- c.batteryChargingDesc
	ch <- c.batteryPresentDesc
	ch <- c.signalPercentDesc
	ch <- c.wanUpDesc
	ch <- c.smsUnreadDesc
	ch <- c.wifiClientsDesc
	ch <- c.linkStateDesc
	ch <- c.simStateDesc
	ch <- c.rxBytesDesc
	ch <- c.txBytesDesc
	ch <- c.totalBytesDesc
	ch <- c.sessionSecsDesc
	ch <- c.totalSecsDesc
	ch <- c.scrapeSuccessDesc
	ch <- c.scrapeDurationDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		ch <- prometheus.MustNewConstMetric(c.scrapeDurationDesc, prometheus.GaugeValue, v)
	}))
	defer timer.ObserveDuration()

	dev, err := c.source.DeviceStatus()
	if err != nil {
		c.logger.Error().Err(err).Msg("device status scrape failed")
		ch <- prometheus.MustNewConstMetric(c.scrapeSuccessDesc, prometheus.GaugeValue, 0)
		return
	}

	link, err := c.source.LinkStatus()
	if err != nil {
		c.logger.Error().Err(err).Msg("link status scrape failed")
		ch <- prometheus.MustNewConstMetric(c.scrapeSuccessDesc, prometheus.GaugeValue, 0)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.scrapeSuccessDesc, prometheus.GaugeValue, 1)

	// Device status metrics
	if pct, ok := parsePercent(dev.Battery); ok {
		ch <- prometheus.MustNewConstMetric(c.batteryPercentDesc, prometheus.GaugeValue, pct)
	}
	ch <- prometheus.MustNewConstMetric(c.batteryChargingDesc, prometheus.GaugeValue, boolValue(dev.Battery == "charging"))
	ch <- prometheus.MustNewConstMetric(c.batteryPresentDesc, prometheus.GaugeValue, boolValue(dev.Battery != "no battery"))
	if pct, ok := parsePercent(dev.Signal); ok {
		ch <- prometheus.MustNewConstMetric(c.signalPercentDesc, prometheus.GaugeValue, pct)
	}
	ch <- prometheus.MustNewConstMetric(c.wanUpDesc, prometheus.GaugeValue, boolValue(dev.WAN == "0"))
	ch <- prometheus.MustNewConstMetric(c.smsUnreadDesc, prometheus.GaugeValue, boolValue(dev.SMS == "unread"))

	// Link status metrics
	if n, ok := parseCount(link.Clients); ok {
		ch <- prometheus.MustNewConstMetric(c.wifiClientsDesc, prometheus.GaugeValue, n, link.SSID)
	}
	ch <- prometheus.MustNewConstMetric(c.linkStateDesc, prometheus.GaugeValue, linkStateValue(link.Link))
	ch <- prometheus.MustNewConstMetric(c.simStateDesc, prometheus.GaugeValue, simStateValue(link.SIM))

	c.constCounter(ch, c.rxBytesDesc, link.RX)
	c.constCounter(ch, c.txBytesDesc, link.TX)
	c.constCounter(ch, c.totalBytesDesc, link.TotalData)
	c.constCounter(ch, c.sessionSecsDesc, link.DurationSec)
	c.constCounter(ch, c.totalSecsDesc, link.TotalDuration)
}

// constCounter emits one counter-like value parsed from the raw field,
// skipping fields the firmware left non-numeric.
func (c *Collector) constCounter(ch chan<- prometheus.Metric, desc *prometheus.Desc, raw string) {
	n, ok := parseCount(raw)
	if !ok {
		c.logger.Debug().Str("value", raw).Msg("skipping non-numeric counter field")
		return
	}
	ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, n)
}

func parsePercent(v string) (float64, bool) {
	v = strings.TrimSuffix(v, "%")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseCount(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func linkStateValue(state string) float64 {
	switch state {
	case router.LinkConnecting:
		return 1
	case router.LinkDisconnecting:
		return 2
	case router.LinkConnected:
		return 3
	default:
		return 0
	}
}

func simStateValue(state string) float64 {
	switch state {
	case router.SIMInvalid:
		return 0
	case router.SIMReady:
		return 1
	case router.SIMPinRequired:
		return 2
	case router.SIMPukRequired:
		return 3
	case router.SIMPinVerified:
		return 4
	default:
		return -1
	}
}
