package scan

import (
	"fmt"
	"sort"
	"time"
)

// HostRecord 一台存活主机的探测结果
// 只由Discoverer创建,由ConnectScanner的汇总协程写入端口,扫描完成后不再修改
type HostRecord struct {
	Address string
	Name    string //反向解析的主机名,可能为空
	MAC     string
	Vendor  string
	Latency time.Duration //存活探测的往返时延,-1表示未存活
	Open    []int
}

func NewHostRecord(address string) *HostRecord { //初始化
	return &HostRecord{
		Address: address,
		Open:    []int{},
		Latency: -1,
	}
}

func (r *HostRecord) IsHostUp() bool {
	return r.Latency > -1 //当主机存活时会修改默认值-1
}

// finalize 去重并按端口号升序,保证报告稳定
func (r *HostRecord) finalize() {
	sort.Ints(r.Open)
	ports := r.Open[:0]
	for i, port := range r.Open {
		if i > 0 && port == r.Open[i-1] {
			continue
		}
		ports = append(ports, port)
	}
	r.Open = ports
}

// DisplayName 解析失败时用unknown占位
func (r *HostRecord) DisplayName() string {
	if r.Name == "" {
		return "unknown"
	}
	return r.Name
}

//实现Stringer接口,输出单个主机的端口明细
func (r *HostRecord) String() string {
	text := fmt.Sprintf("Scan result for %s (%s):\n", r.Address, r.DisplayName())
	if r.IsHostUp() {
		text = fmt.Sprintf("%s\tHost is up with latency %s\n", text, FormatLatency(r.Latency))
	} else {
		text = fmt.Sprintf("%s\tHost is down!\n", text)
	}
	if r.MAC != "" {
		text = fmt.Sprintf("%s\tMAC Address: %s %s\n", text, r.MAC, r.Vendor)
	}
	if len(r.Open) > 0 {
		text = fmt.Sprintf("%s\t%s\t%s\t%s\t\n",
			text, "PORT", "STATE", "SERVICE")
	}

	for _, port := range r.Open {
		text = fmt.Sprintf(
			"%s\t\t%s\t\t%s\t\t%s\n",
			text,
			pad(fmt.Sprintf("%d/tcp", port), 10), // 8080/tcp
			pad("OPEN", 10),
			DescribePort(port),
		)
	}
	return text
}

// sortHosts 按数值地址升序,与探测完成的顺序无关
func sortHosts(hosts []*HostRecord) {
	sort.Slice(hosts, func(i, j int) bool {
		a, errA := AddressToInteger(hosts[i].Address)
		b, errB := AddressToInteger(hosts[j].Address)
		if errA != nil || errB != nil {
			return hosts[i].Address < hosts[j].Address
		}
		return a < b
	})
}

//填充空格直到达到指定的长度
func pad(input string, length int) string {
	for len(input) < length {
		input += " "
	}
	return input
}
