package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"netmapper/scan"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//默认值
var debug bool             //日志级别
var configFile string      //yaml配置文件
var logFile string         //日志文件,按大小切割
var pingTimeoutMS = 50     //存活探测超时
var timeoutMS = 100        //端口连接超时
var parallelism = 256      //并发数量
var portSelection string   //指定端口
var pingMethod = "auto"    //存活探测方式
var pingPorts string       //tcp存活探测的端口
var dnsServer string       //反向解析使用的DNS服务器
var noResolve bool         //不解析主机名
var ouiDatabase string     //MAC厂商数据库
var outputFile string      //报告文件
var showDetails bool       //打印每个主机的端口明细
var versionRequested bool  //打印版本

//初始话命令

func init() {
	//带P的表示同时可接收缩写选项,P代表可以设置短指令
	rootCmd.PersistentFlags().BoolVarP(&versionRequested, "version", "", versionRequested, "Output version information and exit")
	rootCmd.PersistentFlags().BoolVarP(&debug, "verbose", "v", debug, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", configFile, "YAML config file, flags override its values")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "", logFile, "Also write logs to this file (rotated)")
	rootCmd.PersistentFlags().IntVarP(&pingTimeoutMS, "ping-timeout-ms", "", pingTimeoutMS, "Reachability probe timeout in MS")
	rootCmd.PersistentFlags().IntVarP(&timeoutMS, "timeout-ms", "t", timeoutMS, "Port connect timeout in MS")
	rootCmd.PersistentFlags().IntVarP(&parallelism, "workers", "w", parallelism, "Maximum concurrent probes")
	rootCmd.PersistentFlags().StringVarP(&portSelection, "ports", "p", portSelection, "Port to scan. Comma separated, can use hyphens e.g. 22,80,443,8080-8090")
	rootCmd.PersistentFlags().StringVarP(&pingMethod, "method", "m", pingMethod, "Reachability probe. Must be one of auto, icmp, tcp, arp")
	rootCmd.PersistentFlags().StringVarP(&pingPorts, "ping-ports", "", pingPorts, "Ports used by the tcp reachability probe")
	rootCmd.PersistentFlags().StringVarP(&dnsServer, "dns-server", "", dnsServer, "DNS server for reverse lookups, system resolver if empty")
	rootCmd.PersistentFlags().BoolVarP(&noResolve, "no-resolve", "n", noResolve, "Do not resolve host names")
	rootCmd.PersistentFlags().StringVarP(&ouiDatabase, "oui-db", "", ouiDatabase, "OUI database file for MAC vendor lookup")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", outputFile, "Report file, Scan_<timestamp>.txt if empty, - for console only")
	rootCmd.PersistentFlags().BoolVarP(&showDetails, "details", "d", showDetails, "Print a port table for every active host")
}

var rootCmd = &cobra.Command{
	Use:   "netmapper [CIDR]",
	Short: "map live hosts and open ports of an IPv4 subnet",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) { //主要的执行函数
		if versionRequested {
			fmt.Println("development version")
			os.Exit(0)
		}
		setupLogging(debug, logFile)

		cfg, err := buildConfig(cmd, args)
		if err != nil {
			log.Fatal(err)
		}

		mapper, err := scan.NewMapper(cfg)
		if err != nil {
			log.Fatal(err)
		}

		//设置一个主动取消的机制
		ctx, cancel := context.WithCancel(context.Background())
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-c //阻塞直到有信号
			fmt.Println("退出...")
			cancel()
		}()

		start := time.Now()
		log.Debugf("开始扫描:%v", cfg.Target)
		report, err := mapper.Run(ctx)
		if err != nil {
			log.Fatal(err)
		}

		if err := writeReport(report, start, outputFile, showDetails); err != nil {
			log.Fatal(err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// buildConfig 配置文件 < 命令行参数,没有端口时使用默认端口
func buildConfig(cmd *cobra.Command, args []string) (*scan.Config, error) {
	cfg := scan.DefaultConfig()
	if configFile != "" {
		loaded, err := scan.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Target = args[0]
	}
	//检查是否输入ip
	if cfg.Target == "" {
		return nil, fmt.Errorf("至少指定一个目标网段,例如 192.168.1.0/24")
	}

	if flags.Changed("ports") || len(cfg.Ports) == 0 {
		//检查端口flag的输入,没有指定的话用默认的端口,返回[]int
		ports, err := getPorts(portSelection)
		if err != nil {
			return nil, err
		}
		cfg.Ports = ports
	}
	if flags.Changed("ping-ports") {
		ports, err := getPorts(pingPorts)
		if err != nil {
			return nil, err
		}
		cfg.PingPorts = ports
	}
	if flags.Changed("ping-timeout-ms") || configFile == "" {
		cfg.PingTimeout = time.Duration(pingTimeoutMS) * time.Millisecond
	}
	if flags.Changed("timeout-ms") || configFile == "" {
		cfg.ConnectTimeout = time.Duration(timeoutMS) * time.Millisecond
	}
	if flags.Changed("workers") || configFile == "" {
		cfg.Workers = parallelism
	}
	if flags.Changed("method") || configFile == "" {
		cfg.PingMethod = pingMethod
	}
	if flags.Changed("dns-server") {
		cfg.DNSServer = dnsServer
	}
	if flags.Changed("no-resolve") {
		cfg.ResolveNames = !noResolve
	}
	if flags.Changed("oui-db") {
		cfg.OUIDatabase = ouiDatabase
	}
	return cfg, cfg.Validate()
}

func getPorts(selection string) ([]int, error) {
	if strings.TrimSpace(selection) == "" {
		return append([]int{}, scan.DefaultPorts...), nil
	}

	ports := []int{}
	ranges := strings.Split(selection, ",")
	for _, r := range ranges {
		r = strings.TrimSpace(r)
		if strings.Contains(r, "-") { //分别解析起始结束端口
			parts := strings.Split(r, "-")
			if len(parts) != 2 {
				return nil, fmt.Errorf("Invalid port selection segment: '%s'", r)
			}

			p1, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				return nil, fmt.Errorf("Invalid port number: '%s'", parts[0])
			}

			p2, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, fmt.Errorf("Invalid port number: '%s'", parts[1])
			}

			if p1 > p2 {
				return nil, fmt.Errorf("Invalid port range: %d-%d", p1, p2)
			}
			if p1 < 1 || p2 > 65535 {
				return nil, fmt.Errorf("Invalid port range: %d-%d,port number must be between 1 and 65535", p1, p2)
			}

			for i := p1; i <= p2; i++ {
				ports = append(ports, i)
			}

		} else { //按单个情况处理
			if port, err := strconv.Atoi(r); err != nil {
				return nil, fmt.Errorf("Invalid port number: '%s'", r)
			} else {
				if port > 65535 || port < 1 {
					return nil, fmt.Errorf("Invalid port number:%s,port number must be between 1 and 65535", r)
				}
				ports = append(ports, port)
			}
		}
	}
	return ports, nil

}
