package scan

// DefaultPorts 未指定端口时由调用方使用的默认端口
var DefaultPorts = []int{21, 22, 23, 25, 53, 80, 110, 135, 137, 138, 139, 443, 1433, 1434}

func DescribePort(port int) string { //返回端口的描述
	if s, ok := knownPorts[port]; ok {
		return s
	}

	return ""
}
