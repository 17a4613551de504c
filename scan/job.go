package scan

//工作单元只描述要探测什么,结果通过channel交给唯一的汇总协程写入,避免并发写同一个HostRecord

//用于存活探测,探测成功后发送给Discoverer的汇总协程
type hostJob struct {
	addr   string
	result chan<- *HostRecord
}

//用于端口扫描,端口开放时把主机下标发送给汇总协程
type portJob struct {
	host int //在本阶段主机列表中的下标
	addr string
	port int
	open chan<- portHit
}

type portHit struct {
	host int
	port int
}
