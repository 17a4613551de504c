package scan

import (
	"io"
)

// TargetIterator 按升序惰性地产出子网中的可用主机地址,不会预先生成整个列表
type TargetIterator struct {
	subnet *Subnet
	offset uint32 //已经产出的主机偏移量,1..Capacity
}

// NewTargetIterator 192.168.1.0/24 -> 192.168.1.1 ... 192.168.1.254
func NewTargetIterator(subnet *Subnet) *TargetIterator {
	return &TargetIterator{subnet: subnet}
}

// Next 返回下一个候选地址,全部产出后返回io.EOF
func (ti *TargetIterator) Next() (string, error) {
	if ti.subnet == nil || ti.offset >= ti.subnet.Capacity {
		return "", io.EOF
	}
	ti.offset++
	return IntegerToAddress(ti.subnet.Network + ti.offset), nil
}

// Reset 回到起点,可以重新迭代
func (ti *TargetIterator) Reset() {
	ti.offset = 0
}

// Len 候选地址总数
func (ti *TargetIterator) Len() int {
	if ti.subnet == nil {
		return 0
	}
	return int(ti.subnet.Capacity)
}
