package scan

import (
	"net"

	"github.com/klauspost/oui"
	"github.com/mostlygeek/arp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// HardwareLookup 从系统ARP缓存中取MAC地址,可选地用OUI数据库查厂商
// 只对同一网段的主机有意义,查不到时字段留空
type HardwareLookup struct {
	search  func(ip string) string //ARP缓存查询,默认arp.Search
	vendors oui.OuiDB
}

// NewHardwareLookup ouiPath为空时不查厂商
func NewHardwareLookup(ouiPath string) (*HardwareLookup, error) {
	h := &HardwareLookup{search: arp.Search}
	if ouiPath == "" {
		return h, nil
	}
	db, err := oui.OpenStaticFile(ouiPath)
	if err != nil {
		return nil, errors.Wrapf(err, "open OUI database %s", ouiPath)
	}
	h.vendors = db
	return h, nil
}

// Lookup 返回MAC地址和厂商
func (h *HardwareLookup) Lookup(addr string) (mac string, vendor string) {
	//先查看ARP中是否有缓存,全零表示条目不完整
	mac = h.search(addr)
	if mac == "" || mac == "00:00:00:00:00:00" {
		return "", ""
	}
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return "", ""
	}
	mac = hw.String()
	if h.vendors == nil {
		return mac, ""
	}
	entry, err := h.vendors.Query(mac)
	if err != nil {
		if err != oui.ErrNotFound {
			log.Debugf("%s: OUI查询失败:%v", mac, err)
		}
		return mac, ""
	}
	return mac, entry.Manufacturer
}
