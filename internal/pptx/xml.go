package pptx

import (
	"encoding/xml"
)

const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"

	relSlide        = nsRelationships + "/slide"
	relSlideLayout  = nsRelationships + "/slideLayout"
	relSlideMaster  = nsRelationships + "/slideMaster"
	relTheme        = nsRelationships + "/theme"
	relImage        = nsRelationships + "/image"
	relPresProps    = nsRelationships + "/presProps"
	relViewProps    = nsRelationships + "/viewProps"
	relTableStyles  = nsRelationships + "/tableStyles"
	relOfficeDoc    = nsRelationships + "/officeDocument"
	relExtendedProp = nsRelationships + "/extended-properties"
	relCoreProps    = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// Element names carry their prefixes literally; the namespaces are declared on
// the part root.

type xmlRelationships struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []xmlRelationship `xml:"Relationship"`
}

type xmlRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type xmlTypes struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []xmlDefault  `xml:"Default"`
	Overrides []xmlOverride `xml:"Override"`
}

type xmlDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlPresentation struct {
	XMLName          xml.Name            `xml:"p:presentation"`
	XmlnsA           string              `xml:"xmlns:a,attr"`
	XmlnsR           string              `xml:"xmlns:r,attr"`
	XmlnsP           string              `xml:"xmlns:p,attr"`
	SaveSubsetFonts  string              `xml:"saveSubsetFonts,attr"`
	SldMasterIDLst   xmlSldMasterIDLst   `xml:"p:sldMasterIdLst"`
	SldIDLst         *xmlSldIDLst        `xml:"p:sldIdLst,omitempty"`
	SldSz            xmlSize             `xml:"p:sldSz"`
	NotesSz          xmlSize             `xml:"p:notesSz"`
	DefaultTextStyle xmlDefaultTextStyle `xml:"p:defaultTextStyle"`
}

type xmlSldMasterIDLst struct {
	SldMasterID []xmlIDRef `xml:"p:sldMasterId"`
}

type xmlSldIDLst struct {
	SldID []xmlIDRef `xml:"p:sldId"`
}

type xmlIDRef struct {
	ID  int64  `xml:"id,attr"`
	RID string `xml:"r:id,attr"`
}

type xmlSize struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type xmlDefaultTextStyle struct {
	Lvl1pPr xmlLvlPPr `xml:"a:lvl1pPr"`
}

type xmlLvlPPr struct {
	DefRPr xmlRPr `xml:"a:defRPr"`
}

type xmlSlide struct {
	XMLName   xml.Name     `xml:"p:sld"`
	XmlnsA    string       `xml:"xmlns:a,attr"`
	XmlnsR    string       `xml:"xmlns:r,attr"`
	XmlnsP    string       `xml:"xmlns:p,attr"`
	CSld      xmlCSld      `xml:"p:cSld"`
	ClrMapOvr xmlClrMapOvr `xml:"p:clrMapOvr"`
}

type xmlCSld struct {
	SpTree xmlSpTree `xml:"p:spTree"`
}

// xmlSpTree keeps shapes in one slice so z-order follows insertion order.
type xmlSpTree struct {
	NvGrpSpPr xmlNvGrpSpPr `xml:"p:nvGrpSpPr"`
	GrpSpPr   xmlGrpSpPr   `xml:"p:grpSpPr"`
	Shapes    []interface{}
}

type xmlNvGrpSpPr struct {
	CNvPr      xmlCNvPr `xml:"p:cNvPr"`
	CNvGrpSpPr struct{} `xml:"p:cNvGrpSpPr"`
	NvPr       struct{} `xml:"p:nvPr"`
}

type xmlGrpSpPr struct {
	Xfrm xmlGrpXfrm `xml:"a:xfrm"`
}

type xmlGrpXfrm struct {
	Off   xmlOff `xml:"a:off"`
	Ext   xmlExt `xml:"a:ext"`
	ChOff xmlOff `xml:"a:chOff"`
	ChExt xmlExt `xml:"a:chExt"`
}

type xmlCNvPr struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr,omitempty"`
}

type xmlOff struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type xmlExt struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type xmlXfrm struct {
	Off xmlOff `xml:"a:off"`
	Ext xmlExt `xml:"a:ext"`
}

type xmlPrstGeom struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

type xmlSpPr struct {
	Xfrm     xmlXfrm     `xml:"a:xfrm"`
	PrstGeom xmlPrstGeom `xml:"a:prstGeom"`
	NoFill   *struct{}   `xml:"a:noFill,omitempty"`
}

type xmlSp struct {
	XMLName xml.Name  `xml:"p:sp"`
	NvSpPr  xmlNvSpPr `xml:"p:nvSpPr"`
	SpPr    xmlSpPr   `xml:"p:spPr"`
	TxBody  xmlTxBody `xml:"p:txBody"`
}

type xmlNvSpPr struct {
	CNvPr   xmlCNvPr   `xml:"p:cNvPr"`
	CNvSpPr xmlCNvSpPr `xml:"p:cNvSpPr"`
	NvPr    struct{}   `xml:"p:nvPr"`
}

type xmlCNvSpPr struct {
	TxBox string `xml:"txBox,attr"`
}

type xmlTxBody struct {
	BodyPr   xmlBodyPr `xml:"a:bodyPr"`
	LstStyle struct{}  `xml:"a:lstStyle"`
	P        []xmlP    `xml:"a:p"`
}

type xmlBodyPr struct {
	Wrap      string   `xml:"wrap,attr"`
	RtlCol    string   `xml:"rtlCol,attr"`
	SpAutoFit struct{} `xml:"a:spAutoFit"`
}

type xmlP struct {
	R          []xmlR  `xml:"a:r"`
	EndParaRPr *xmlRPr `xml:"a:endParaRPr,omitempty"`
}

type xmlR struct {
	RPr xmlRPr `xml:"a:rPr"`
	T   string `xml:"a:t"`
}

type xmlRPr struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Sz    int    `xml:"sz,attr,omitempty"`
	Dirty string `xml:"dirty,attr,omitempty"`
}

type xmlPic struct {
	XMLName  xml.Name    `xml:"p:pic"`
	NvPicPr  xmlNvPicPr  `xml:"p:nvPicPr"`
	BlipFill xmlBlipFill `xml:"p:blipFill"`
	SpPr     xmlSpPr     `xml:"p:spPr"`
}

type xmlNvPicPr struct {
	CNvPr    xmlCNvPr    `xml:"p:cNvPr"`
	CNvPicPr xmlCNvPicPr `xml:"p:cNvPicPr"`
	NvPr     struct{}    `xml:"p:nvPr"`
}

type xmlCNvPicPr struct {
	PicLocks xmlPicLocks `xml:"a:picLocks"`
}

type xmlPicLocks struct {
	NoChangeAspect string `xml:"noChangeAspect,attr"`
}

type xmlBlipFill struct {
	Blip    xmlBlip    `xml:"a:blip"`
	Stretch xmlStretch `xml:"a:stretch"`
}

type xmlBlip struct {
	Embed string `xml:"r:embed,attr"`
}

type xmlStretch struct {
	FillRect struct{} `xml:"a:fillRect"`
}

type xmlClrMapOvr struct {
	MasterClrMapping struct{} `xml:"a:masterClrMapping"`
}

func marshalPart(v interface{}) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), body...), nil
}

func frameXfrm(f Frame) xmlXfrm {
	return xmlXfrm{
		Off: xmlOff{X: int64(f.X), Y: int64(f.Y)},
		Ext: xmlExt{Cx: int64(f.Width), Cy: int64(f.Height)},
	}
}

func textBoxXML(tb *TextBox) xmlSp {
	body := xmlTxBody{
		BodyPr: xmlBodyPr{Wrap: "none", RtlCol: "0"},
	}
	for _, para := range tb.paragraphs {
		p := xmlP{}
		if para.Text != "" {
			p.R = append(p.R, xmlR{
				RPr: xmlRPr{Lang: "en-US", Sz: para.sz, Dirty: "0"},
				T:   para.Text,
			})
		}
		if para.sz > 0 {
			p.EndParaRPr = &xmlRPr{Lang: "en-US", Sz: para.sz, Dirty: "0"}
		}
		body.P = append(body.P, p)
	}

	return xmlSp{
		NvSpPr: xmlNvSpPr{
			CNvPr:   xmlCNvPr{ID: tb.id, Name: tb.name},
			CNvSpPr: xmlCNvSpPr{TxBox: "1"},
		},
		SpPr: xmlSpPr{
			Xfrm:     frameXfrm(tb.frame),
			PrstGeom: xmlPrstGeom{Prst: "rect"},
			NoFill:   &struct{}{},
		},
		TxBody: body,
	}
}

func pictureXML(pic *Picture, rID string) xmlPic {
	return xmlPic{
		NvPicPr: xmlNvPicPr{
			CNvPr:    xmlCNvPr{ID: pic.id, Name: pic.name, Descr: pic.Descr},
			CNvPicPr: xmlCNvPicPr{PicLocks: xmlPicLocks{NoChangeAspect: "1"}},
		},
		BlipFill: xmlBlipFill{Blip: xmlBlip{Embed: rID}},
		SpPr: xmlSpPr{
			Xfrm:     frameXfrm(pic.frame),
			PrstGeom: xmlPrstGeom{Prst: "rect"},
		},
	}
}

func emptyGroup() (xmlNvGrpSpPr, xmlGrpSpPr) {
	return xmlNvGrpSpPr{CNvPr: xmlCNvPr{ID: 1, Name: ""}}, xmlGrpSpPr{}
}
