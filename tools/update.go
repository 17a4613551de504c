package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

const ianaRegistry = "https://www.iana.org/assignments/service-names-port-numbers/service-names-port-numbers.csv"

//用于更新端口描述列表scan/known.go,在仓库根目录执行: go run ./tools
func main() {
	output := flag.String("o", "./scan/known.go", "generated file")
	flag.Parse()

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(ianaRegistry)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("下载端口列表失败: %s", resp.Status)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	count, err := generate(resp.Body, f)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("写入%d个TCP端口描述到%s", count, *output)
}

// generate 只保留tcp协议,每个端口取第一个服务名
func generate(csvData io.Reader, out io.Writer) (int, error) {
	w := bufio.NewWriter(out)
	fmt.Fprint(w, `package scan
// data from `+ianaRegistry+`
var knownPorts = map[int]string{`)

	seen := map[int]bool{}
	reader := csv.NewReader(csvData)
	reader.FieldsPerRecord = -1
	for {
		// read one row from csv
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}

		if len(record) < 3 || record[2] != "tcp" || record[0] == "" {
			continue
		}
		port, err := strconv.Atoi(record[1])
		if err != nil || seen[port] { //端口范围如"6000-6063"直接跳过
			continue
		}
		seen[port] = true
		fmt.Fprintf(w, "\n\t%d: %q,", port, record[0])
	}

	fmt.Fprint(w, "\n}\n")
	return len(seen), w.Flush()
}
