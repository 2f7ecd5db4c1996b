package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
)

// Summary is a read-back view of a saved deck, enough to check geometry and
// text without a presentation application.
type Summary struct {
	Width      EMU
	Height     EMU
	Slides     []SlideSummary
	MediaCount int
}

type SlideSummary struct {
	Index     int
	TextBoxes []TextBoxSummary
	Pictures  []PictureSummary
}

type TextBoxSummary struct {
	ID       int
	Frame    Frame
	Text     string
	FontSize float64
}

type PictureSummary struct {
	ID    int
	Frame Frame
	Media string
	Descr string
}

// ShapeCount is the number of text boxes and pictures on the slide.
func (s SlideSummary) ShapeCount() int {
	return len(s.TextBoxes) + len(s.Pictures)
}

// Reading uses local element names; prefixes are resolved by the decoder.

type readRels struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type readPresentation struct {
	SldIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SldSz struct {
		Cx int64 `xml:"cx,attr"`
		Cy int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

type readCNvPr struct {
	ID    int    `xml:"id,attr"`
	Descr string `xml:"descr,attr"`
}

type readXfrm struct {
	Off struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"off"`
	Ext struct {
		Cx int64 `xml:"cx,attr"`
		Cy int64 `xml:"cy,attr"`
	} `xml:"ext"`
}

func (x readXfrm) frame() Frame {
	return Frame{X: EMU(x.Off.X), Y: EMU(x.Off.Y), Width: EMU(x.Ext.Cx), Height: EMU(x.Ext.Cy)}
}

type readRPr struct {
	Sz int `xml:"sz,attr"`
}

type readSp struct {
	CNvPr  readCNvPr `xml:"nvSpPr>cNvPr"`
	Xfrm   readXfrm  `xml:"spPr>xfrm"`
	TxBody *struct {
		P []struct {
			R []struct {
				RPr readRPr `xml:"rPr"`
				T   string  `xml:"t"`
			} `xml:"r"`
			EndParaRPr *readRPr `xml:"endParaRPr"`
		} `xml:"p"`
	} `xml:"txBody"`
}

type readPic struct {
	CNvPr readCNvPr `xml:"nvPicPr>cNvPr"`
	Blip  struct {
		Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
	} `xml:"blipFill>blip"`
	Xfrm readXfrm `xml:"spPr>xfrm"`
}

type readSlide struct {
	Sps  []readSp  `xml:"cSld>spTree>sp"`
	Pics []readPic `xml:"cSld>spTree>pic"`
}

// ReadSummary opens a .pptx file and lists the slide size and the shapes of
// every slide in presentation order.
func ReadSummary(filename string) (*Summary, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open presentation: %w", err)
	}
	defer zr.Close()

	files := make(map[string]*zip.File, len(zr.File))
	summary := &Summary{}
	for _, f := range zr.File {
		files[f.Name] = f
		if strings.HasPrefix(f.Name, "ppt/media/") {
			summary.MediaCount++
		}
	}

	var pres readPresentation
	if err := decodePart(files, partPresentation, &pres); err != nil {
		return nil, err
	}
	summary.Width = EMU(pres.SldSz.Cx)
	summary.Height = EMU(pres.SldSz.Cy)

	presRels, err := readRelTargets(files, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	for i, id := range pres.SldIDs {
		target, ok := presRels[id.RID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s not found", id.RID)
		}
		slidePart := path.Join("ppt", target)

		slide, err := readSlideSummary(files, slidePart)
		if err != nil {
			return nil, err
		}
		slide.Index = i
		summary.Slides = append(summary.Slides, *slide)
	}

	return summary, nil
}

func readSlideSummary(files map[string]*zip.File, slidePart string) (*SlideSummary, error) {
	var doc readSlide
	if err := decodePart(files, slidePart, &doc); err != nil {
		return nil, err
	}

	dir, base := path.Split(slidePart)
	rels, err := readRelTargets(files, dir+"_rels/"+base+".rels")
	if err != nil {
		return nil, err
	}

	slide := &SlideSummary{}
	for _, sp := range doc.Sps {
		if sp.TxBody == nil {
			continue
		}
		tb := TextBoxSummary{ID: sp.CNvPr.ID, Frame: sp.Xfrm.frame()}

		paras := make([]string, 0, len(sp.TxBody.P))
		for i, p := range sp.TxBody.P {
			var b strings.Builder
			for _, r := range p.R {
				b.WriteString(r.T)
				if i == 0 && tb.FontSize == 0 && r.RPr.Sz > 0 {
					tb.FontSize = float64(r.RPr.Sz) / 100
				}
			}
			if i == 0 && tb.FontSize == 0 && p.EndParaRPr != nil && p.EndParaRPr.Sz > 0 {
				tb.FontSize = float64(p.EndParaRPr.Sz) / 100
			}
			paras = append(paras, b.String())
		}
		tb.Text = strings.Join(paras, "\n")
		slide.TextBoxes = append(slide.TextBoxes, tb)
	}

	for _, pic := range doc.Pics {
		media := rels[pic.Blip.Embed]
		if media != "" {
			media = path.Join(dir, media)
		}
		slide.Pictures = append(slide.Pictures, PictureSummary{
			ID:    pic.CNvPr.ID,
			Frame: pic.Xfrm.frame(),
			Media: media,
			Descr: pic.CNvPr.Descr,
		})
	}

	sort.Slice(slide.TextBoxes, func(i, j int) bool { return slide.TextBoxes[i].ID < slide.TextBoxes[j].ID })
	sort.Slice(slide.Pictures, func(i, j int) bool { return slide.Pictures[i].ID < slide.Pictures[j].ID })

	return slide, nil
}

func readRelTargets(files map[string]*zip.File, name string) (map[string]string, error) {
	targets := make(map[string]string)
	if _, ok := files[name]; !ok {
		return targets, nil
	}

	var rels readRels
	if err := decodePart(files, name, &rels); err != nil {
		return nil, err
	}
	for _, r := range rels.Relationships {
		targets[r.ID] = r.Target
	}
	return targets, nil
}

func decodePart(files map[string]*zip.File, name string, v interface{}) error {
	f, ok := files[name]
	if !ok {
		return fmt.Errorf("package part %s not found", name)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
