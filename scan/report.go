package scan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const separator = "*****************************************"

// ScanReport 扫描的最终结果,构建后只读,是交给外部输出的唯一产物
type ScanReport struct {
	Network     string
	Prefix      int
	Mask        string
	Capacity    uint32
	Hosts       []HostRecord //按地址升序
	Started     time.Time
	Elapsed     time.Duration
	Interrupted bool //扫描被取消,结果不完整
}

// BuildReport 只做组装不做探测,复制主机记录,之后与扫描过程不再共享任何引用
func BuildReport(subnet *Subnet, hosts []*HostRecord, started time.Time, elapsed time.Duration) *ScanReport {
	report := &ScanReport{
		Network:  subnet.Address(),
		Prefix:   subnet.Prefix,
		Mask:     subnet.MaskString(),
		Capacity: subnet.Capacity,
		Hosts:    make([]HostRecord, 0, len(hosts)),
		Started:  started,
		Elapsed:  elapsed,
	}

	sorted := append([]*HostRecord(nil), hosts...)
	sortHosts(sorted)
	for _, host := range sorted {
		record := *host
		record.Open = append([]int{}, host.Open...)
		record.finalize()
		report.Hosts = append(report.Hosts, record)
	}
	return report
}

// ActiveHosts 存活主机数量
func (r *ScanReport) ActiveHosts() int {
	return len(r.Hosts)
}

//实现Stringer接口,生成纯文本报告
func (r *ScanReport) String() string {
	var b strings.Builder
	fmt.Fprintln(&b, separator)
	fmt.Fprintf(&b, "Target Network: %s/%d\n", r.Network, r.Prefix)
	fmt.Fprintf(&b, "Subnet Mask: %s\n", r.Mask)
	fmt.Fprintf(&b, "Maximum Network Hosts: %d\n", r.Capacity)
	fmt.Fprintln(&b, separator)
	fmt.Fprintf(&b, "Found %d Active Hosts:\n", r.ActiveHosts())
	for _, host := range r.Hosts {
		fmt.Fprintf(&b, " - %s, %s (%s):\n", host.Address, host.DisplayName(), FormatLatency(host.Latency))
		if host.MAC != "" {
			fmt.Fprintf(&b, "   - MAC Address: %s\n", strings.TrimSpace(host.MAC+" "+host.Vendor))
		}
		fmt.Fprintf(&b, "   - Open Ports: %s\n", JoinPorts(host.Open))
	}
	fmt.Fprintln(&b, separator)
	if r.Interrupted {
		fmt.Fprintln(&b, "Scan interrupted, results are incomplete.")
	}
	fmt.Fprintf(&b, "Scan completed in %s", r.Elapsed.Round(time.Millisecond))
	return b.String()
}

// JoinPorts 22, 80, 443; 没有开放端口时返回明确的提示
func JoinPorts(ports []int) string {
	if len(ports) == 0 {
		return "no open ports found"
	}
	parts := make([]string, len(ports))
	for i, port := range ports {
		parts[i] = strconv.Itoa(port)
	}
	return strings.Join(parts, ", ")
}

// FormatLatency 毫秒,最多保留两位小数: 1.5ms, 12.34ms
func FormatLatency(latency time.Duration) string {
	if latency < 0 {
		return "n/a"
	}
	ms := float64(latency) / float64(time.Millisecond)
	ms = math.Round(ms*100) / 100
	return strconv.FormatFloat(ms, 'f', -1, 64) + "ms"
}
