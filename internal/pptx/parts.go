package pptx

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/kpauljoseph/pdf2pptx/pkg/utils"
)

const (
	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps    = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctAppProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"

	partPresentation = "ppt/presentation.xml"
	partSlideMaster  = "ppt/slideMasters/slideMaster1.xml"
	partSlideLayout  = "ppt/slideLayouts/slideLayout1.xml"
	partTheme        = "ppt/theme/theme1.xml"
	partPresProps    = "ppt/presProps.xml"
	partViewProps    = "ppt/viewProps.xml"
	partTableStyles  = "ppt/tableStyles.xml"
	partCoreProps    = "docProps/core.xml"
	partAppProps     = "docProps/app.xml"

	// Slide relationship ids follow the fixed presentation parts.
	firstSlideRelID = 6
	firstSlideID    = 256
	slideMasterID   = 2147483648
	slideLayoutID   = 2147483649

	appName = "pdf2pptx"
)

const nsDecl = `xmlns:a="` + nsDrawingML + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentationML + `"`

const groupShapeXML = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

var slideMasterXML = xmlHeader +
	`<p:sldMaster ` + nsDecl + `>` +
	`<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree>` + groupShapeXML + `</p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	fmt.Sprintf(`<p:sldLayoutIdLst><p:sldLayoutId id="%d" r:id="rId1"/></p:sldLayoutIdLst>`, slideLayoutID) +
	`<p:txStyles>` +
	`<p:titleStyle><a:lvl1pPr algn="l"><a:defRPr sz="4400" kern="1200"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mj-lt"/><a:ea typeface="+mj-ea"/><a:cs typeface="+mj-cs"/></a:defRPr></a:lvl1pPr></p:titleStyle>` +
	`<p:bodyStyle><a:lvl1pPr algn="l"><a:defRPr sz="1800" kern="1200"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mn-lt"/><a:ea typeface="+mn-ea"/><a:cs typeface="+mn-cs"/></a:defRPr></a:lvl1pPr></p:bodyStyle>` +
	`<p:otherStyle><a:lvl1pPr algn="l"><a:defRPr sz="1800" kern="1200"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mn-lt"/><a:ea typeface="+mn-ea"/><a:cs typeface="+mn-cs"/></a:defRPr></a:lvl1pPr></p:otherStyle>` +
	`</p:txStyles>` +
	`</p:sldMaster>`

var slideLayoutXML = xmlHeader +
	`<p:sldLayout ` + nsDecl + ` type="blank" preserve="1">` +
	`<p:cSld name="Blank"><p:spTree>` + groupShapeXML + `</p:spTree></p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
	`</p:sldLayout>`

var presPropsXML = xmlHeader + `<p:presentationPr ` + nsDecl + `/>`

var viewPropsXML = xmlHeader + `<p:viewPr ` + nsDecl + `><p:normalViewPr/><p:gridSpacing cx="76200" cy="76200"/></p:viewPr>`

var tableStylesXML = xmlHeader + `<a:tblStyleLst xmlns:a="` + nsDrawingML + `" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`

func solidFill(color string) string {
	return `<a:solidFill><a:schemeClr val="` + color + `"/></a:solidFill>`
}

var themeXML = xmlHeader +
	`<a:theme xmlns:a="` + nsDrawingML + `" name="Office Theme"><a:themeElements>` +
	`<a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="1F497D"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="EEECE1"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4F81BD"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="C0504D"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="9BBB59"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="8064A2"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="4BACC6"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="F79646"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0000FF"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="800080"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office">` +
	`<a:majorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Office">` +
	`<a:fillStyleLst>` + solidFill("phClr") + solidFill("phClr") + solidFill("phClr") + `</a:fillStyleLst>` +
	`<a:lnStyleLst>` +
	`<a:ln w="9525">` + solidFill("phClr") + `</a:ln>` +
	`<a:ln w="25400">` + solidFill("phClr") + `</a:ln>` +
	`<a:ln w="38100">` + solidFill("phClr") + `</a:ln>` +
	`</a:lnStyleLst>` +
	`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
	`<a:bgFillStyleLst>` + solidFill("phClr") + solidFill("phClr") + solidFill("phClr") + `</a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements><a:objectDefaults/><a:extraClrSchemeLst/></a:theme>`

func relsXML(rels []xmlRelationship) ([]byte, error) {
	return marshalPart(xmlRelationships{
		Xmlns:         nsPackageRels,
		Relationships: rels,
	})
}

func rootRels() []xmlRelationship {
	return []xmlRelationship{
		{ID: "rId1", Type: relOfficeDoc, Target: partPresentation},
		{ID: "rId2", Type: relCoreProps, Target: partCoreProps},
		{ID: "rId3", Type: relExtendedProp, Target: partAppProps},
	}
}

func presentationRels(slideCount int) []xmlRelationship {
	rels := []xmlRelationship{
		{ID: "rId1", Type: relSlideMaster, Target: "slideMasters/slideMaster1.xml"},
		{ID: "rId2", Type: relPresProps, Target: "presProps.xml"},
		{ID: "rId3", Type: relViewProps, Target: "viewProps.xml"},
		{ID: "rId4", Type: relTheme, Target: "theme/theme1.xml"},
		{ID: "rId5", Type: relTableStyles, Target: "tableStyles.xml"},
	}
	for i := 0; i < slideCount; i++ {
		rels = append(rels, xmlRelationship{
			ID:     fmt.Sprintf("rId%d", firstSlideRelID+i),
			Type:   relSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	return rels
}

func (p *Presentation) presentationXML() ([]byte, error) {
	doc := xmlPresentation{
		XmlnsA:          nsDrawingML,
		XmlnsR:          nsRelationships,
		XmlnsP:          nsPresentationML,
		SaveSubsetFonts: "1",
		SldMasterIDLst: xmlSldMasterIDLst{
			SldMasterID: []xmlIDRef{{ID: slideMasterID, RID: "rId1"}},
		},
		SldSz:   xmlSize{Cx: int64(p.width), Cy: int64(p.height)},
		NotesSz: xmlSize{Cx: int64(DefaultSlideHeight), Cy: int64(DefaultSlideWidth)},
		DefaultTextStyle: xmlDefaultTextStyle{
			Lvl1pPr: xmlLvlPPr{DefRPr: xmlRPr{Lang: "en-US"}},
		},
	}

	if len(p.slides) > 0 {
		doc.SldIDLst = &xmlSldIDLst{}
		for i := range p.slides {
			doc.SldIDLst.SldID = append(doc.SldIDLst.SldID, xmlIDRef{
				ID:  int64(firstSlideID + i),
				RID: fmt.Sprintf("rId%d", firstSlideRelID+i),
			})
		}
	}

	return marshalPart(doc)
}

func (p *Presentation) contentTypesXML() ([]byte, error) {
	types := xmlTypes{
		Xmlns: nsContentTypes,
		Defaults: []xmlDefault{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: "application/xml"},
		},
	}

	seen := make(map[string]bool)
	for _, m := range p.media {
		if seen[m.ext] {
			continue
		}
		seen[m.ext] = true
		types.Defaults = append(types.Defaults, xmlDefault{Extension: m.ext, ContentType: utils.ImageMIME(m.ext)})
	}

	overrides := []xmlOverride{
		{PartName: "/" + partPresentation, ContentType: ctPresentation},
		{PartName: "/" + partSlideMaster, ContentType: ctSlideMaster},
		{PartName: "/" + partSlideLayout, ContentType: ctSlideLayout},
		{PartName: "/" + partTheme, ContentType: ctTheme},
		{PartName: "/" + partPresProps, ContentType: ctPresProps},
		{PartName: "/" + partViewProps, ContentType: ctViewProps},
		{PartName: "/" + partTableStyles, ContentType: ctTableStyles},
		{PartName: "/" + partCoreProps, ContentType: ctCoreProps},
		{PartName: "/" + partAppProps, ContentType: ctAppProps},
	}
	for i := range p.slides {
		overrides = append(overrides, xmlOverride{
			PartName:    fmt.Sprintf("/ppt/slides/slide%d.xml", i+1),
			ContentType: ctSlide,
		})
	}
	types.Overrides = overrides

	return marshalPart(types)
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

func (p *Presentation) corePropsXML(now time.Time) []byte {
	created := p.core.Created
	if created.IsZero() {
		created = now
	}
	author := p.core.Author
	if author == "" {
		author = appName
	}

	return []byte(xmlHeader +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escape(p.core.Title) + `</dc:title>` +
		`<dc:subject>` + escape(p.core.Subject) + `</dc:subject>` +
		`<dc:creator>` + escape(author) + `</dc:creator>` +
		`<cp:lastModifiedBy>` + appName + `</cp:lastModifiedBy>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + created.UTC().Format(time.RFC3339) + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + now.UTC().Format(time.RFC3339) + `</dcterms:modified>` +
		`</cp:coreProperties>`)
}

func (p *Presentation) appPropsXML() []byte {
	return []byte(xmlHeader +
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">` +
		`<Application>` + appName + `</Application>` +
		`<PresentationFormat>Custom</PresentationFormat>` +
		fmt.Sprintf(`<Slides>%d</Slides>`, len(p.slides)) +
		`<Notes>0</Notes><HiddenSlides>0</HiddenSlides><MMClips>0</MMClips><ScaleCrop>false</ScaleCrop>` +
		`<LinksUpToDate>false</LinksUpToDate><SharedDoc>false</SharedDoc><HyperlinksChanged>false</HyperlinksChanged>` +
		`<AppVersion>16.0000</AppVersion>` +
		`</Properties>`)
}

// slideParts renders a slide and its relationships. Pictures that share a
// media part also share one relationship.
func (s *Slide) slideParts() ([]byte, []byte, error) {
	rels := []xmlRelationship{
		{ID: "rId1", Type: relSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
	}
	relByMedia := make(map[*media]string)

	nvGrp, grp := emptyGroup()
	doc := xmlSlide{
		XmlnsA: nsDrawingML,
		XmlnsR: nsRelationships,
		XmlnsP: nsPresentationML,
		CSld: xmlCSld{SpTree: xmlSpTree{
			NvGrpSpPr: nvGrp,
			GrpSpPr:   grp,
		}},
	}

	for _, shape := range s.shapes {
		switch sh := shape.(type) {
		case *TextBox:
			doc.CSld.SpTree.Shapes = append(doc.CSld.SpTree.Shapes, textBoxXML(sh))
		case *Picture:
			rID, ok := relByMedia[sh.media]
			if !ok {
				rID = fmt.Sprintf("rId%d", len(rels)+1)
				relByMedia[sh.media] = rID
				rels = append(rels, xmlRelationship{
					ID:     rID,
					Type:   relImage,
					Target: "../" + strings.TrimPrefix(sh.media.name, "ppt/"),
				})
			}
			doc.CSld.SpTree.Shapes = append(doc.CSld.SpTree.Shapes, pictureXML(sh, rID))
		}
	}

	slideXML, err := marshalPart(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal slide %d: %w", s.index+1, err)
	}

	relsData, err := relsXML(rels)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal slide %d relationships: %w", s.index+1, err)
	}

	return slideXML, relsData, nil
}
