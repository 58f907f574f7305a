package tools

import (
	"fmt"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteSheet 将结构体切片写入 sheet，第一行为表头
// 表头取 excel tag，没有 tag 时使用字段名，excel:"-" 的字段跳过
func WriteSheet(f *excelize.File, sheet string, data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("data %T is not a slice", data)
	}

	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("data %T is not a slice of struct", data)
	}

	if sheet == "" {
		sheet = "Sheet1"
	}
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	var headers []string
	var columns [][]int
	for i := 0; i < elemType.NumField(); i++ {
		sf := elemType.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("excel")
		if tag == "-" {
			continue
		}
		if tag == "" {
			tag = sf.Name
		}
		headers = append(headers, tag)
		columns = append(columns, sf.Index)
	}

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for row := 0; row < v.Len(); row++ {
		elem := v.Index(row)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}

		values := make([]any, len(columns))
		for i, index := range columns {
			values[i] = cellValue(elem.FieldByIndex(index))
		}
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func cellValue(fv reflect.Value) any {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			return ""
		}
		fv = fv.Elem()
	}
	if t, ok := fv.Interface().(time.Time); ok {
		return t.Format(time.DateTime)
	}
	return fv.Interface()
}
